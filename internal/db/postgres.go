package db

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/optimusmind/diagnostico-backend/internal/catalog"
	"github.com/optimusmind/diagnostico-backend/internal/platform/envutil"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

type PostgresService struct {
	db     *gorm.DB
	log    *logger.Logger
	driver string
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	driver := strings.ToLower(envutil.String("DB_DRIVER", "postgres"))

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		// Local development only; production runs on Postgres.
		path := envutil.String("SQLITE_PATH", "diagnostico.db")
		serviceLog.Info("Connecting to sqlite...", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			TranslateError: true,
		})
	default:
		driver = "postgres"
		postgresHost := envutil.String("POSTGRES_HOST", "localhost")
		postgresPort := envutil.String("POSTGRES_PORT", "5432")
		postgresUser := envutil.String("POSTGRES_USER", "postgres")
		postgresPassword := envutil.String("POSTGRES_PASSWORD", "")
		postgresName := envutil.String("POSTGRES_NAME", "diagnostico")

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

		serviceLog.Info("Connecting to Postgres...")
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError:                           true,
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	}
	if err != nil {
		serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	return &PostgresService{db: db, log: serviceLog, driver: driver}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&types.TrainingCatalogEntry{},
		&types.DiagnosticRecord{},
		&types.WebhookDelivery{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.driver != "postgres" {
		return nil
	}
	s.log.Info("Configuring foreign key relationships...")
	if err := s.db.Exec(`
		ALTER TABLE "diagnostic_record"
		DROP CONSTRAINT IF EXISTS "fk_diagnostic_record_training_id";
	`).Error; err != nil {
		return fmt.Errorf("failed to reset fk_diagnostic_record_training_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "diagnostic_record"
		ADD CONSTRAINT "fk_diagnostic_record_training_id"
		FOREIGN KEY ("training_id")
		REFERENCES "training_catalog"("id")
		ON DELETE RESTRICT
	`).Error; err != nil {
		return fmt.Errorf("failed to add fk_diagnostic_record_training_id: %w", err)
	}
	return nil
}

// SeedTrainingCatalog upserts the embedded catalog so every pillar has a
// training row before the first submission arrives.
func (s *PostgresService) SeedTrainingCatalog() error {
	entries, err := catalog.Load()
	if err != nil {
		return err
	}
	s.log.Info("Seeding training catalog...", "entries", len(entries))
	for _, e := range entries {
		row := types.TrainingCatalogEntry{
			ID:        uuid.New(),
			PillarKey: e.PillarKey,
			Title:     e.Title,
			EmbedURL:  e.EmbedURL,
		}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pillar_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "embed_url", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("seed training for %s: %w", e.PillarKey, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
