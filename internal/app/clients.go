package app

import (
	"fmt"

	"github.com/optimusmind/diagnostico-backend/internal/clients/webhook"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type Clients struct {
	Collector webhook.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	cfg := webhook.ConfigFromEnv()
	if cfg.TargetURL == "" {
		log.Warn("WEBHOOK_TARGET_URL not set, telemetry forwarding is disabled")
		return Clients{Collector: webhook.NewDisabled(log)}, nil
	}
	collector, err := webhook.New(log, cfg)
	if err != nil {
		return Clients{}, fmt.Errorf("init webhook client: %w", err)
	}
	return Clients{Collector: collector}, nil
}
