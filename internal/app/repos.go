package app

import (
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/repos"
)

type Repos struct {
	DiagnosticRecord repos.DiagnosticRecordRepo
	TrainingCatalog  repos.TrainingCatalogRepo
	WebhookDelivery  repos.WebhookDeliveryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		DiagnosticRecord: repos.NewDiagnosticRecordRepo(db, log),
		TrainingCatalog:  repos.NewTrainingCatalogRepo(db, log),
		WebhookDelivery:  repos.NewWebhookDeliveryRepo(db, log),
	}
}
