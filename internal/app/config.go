package app

import (
	"strings"

	"github.com/optimusmind/diagnostico-backend/internal/platform/envutil"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	LogMode         string
	Environment     string
	Version         string
	SiteURL         string
	AllowedOrigins  []string
	EnrichmentToken string
	TracingEnabled  bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:            envutil.String("PORT", "8080"),
		LogMode:         envutil.String("LOG_MODE", "development"),
		Environment:     envutil.String("APP_ENV", "development"),
		Version:         envutil.String("APP_VERSION", "dev"),
		SiteURL:         envutil.String("SITE_URL", "http://localhost:3000"),
		EnrichmentToken: envutil.String("ENRICHMENT_TOKEN", ""),
		TracingEnabled:  envutil.Bool("OTEL_ENABLED", false),
	}
	if raw := envutil.String("ALLOWED_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if cfg.EnrichmentToken == "" {
		log.Warn("ENRICHMENT_TOKEN not set, narrative callbacks are disabled")
	}
	return cfg
}
