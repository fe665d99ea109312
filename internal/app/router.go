package app

import (
	"github.com/gin-gonic/gin"

	"github.com/optimusmind/diagnostico-backend/internal/server"
)

func wireRouter(cfg Config, hs Handlers, ms Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins:       cfg.AllowedOrigins,
		TracingEnabled:       cfg.TracingEnabled,
		DiagnosticHandler:    hs.Diagnostic,
		TelemetryHandler:     hs.Telemetry,
		EnrichmentMiddleware: ms.Enrichment,
	})
}
