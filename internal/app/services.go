package app

import (
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/services"
)

type Services struct {
	Training   services.TrainingService
	Diagnostic services.DiagnosticService
	Telemetry  services.TelemetryService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")
	trainingService := services.NewTrainingService(db, log, repos.TrainingCatalog)
	return Services{
		Training:   trainingService,
		Diagnostic: services.NewDiagnosticService(db, log, repos.DiagnosticRecord, trainingService, cfg.SiteURL),
		Telemetry:  services.NewTelemetryService(db, log, repos.WebhookDelivery, clients.Collector),
	}
}
