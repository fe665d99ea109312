package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/optimusmind/diagnostico-backend/internal/handlers"
	"github.com/optimusmind/diagnostico-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins       []string
	TracingEnabled       bool
	DiagnosticHandler    *handlers.DiagnosticHandler
	TelemetryHandler     *handlers.TelemetryHandler
	EnrichmentMiddleware *middleware.EnrichmentMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("diagnostico"))
	}
	router.Use(middleware.RequestID())

	// Cors
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/diagnostics", cfg.DiagnosticHandler.Create)
		api.GET("/diagnostics/results", cfg.DiagnosticHandler.Results)
		api.POST("/telemetry/page-visit", cfg.TelemetryHandler.RecordPageVisit)
	}

	// ===============
	// || Protected ||
	// ===============
	enrichment := api.Group("/")
	enrichment.Use(cfg.EnrichmentMiddleware.RequireToken())
	enrichment.POST("/diagnostics/:submission_id/narrative", cfg.DiagnosticHandler.AttachNarrative)

	return router
}
