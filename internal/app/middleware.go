package app

import (
	"github.com/optimusmind/diagnostico-backend/internal/middleware"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type Middleware struct {
	Enrichment *middleware.EnrichmentMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Enrichment: middleware.NewEnrichmentMiddleware(log, cfg.EnrichmentToken),
	}
}
