package app

import (
	"github.com/optimusmind/diagnostico-backend/internal/handlers"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type Handlers struct {
	Diagnostic *handlers.DiagnosticHandler
	Telemetry  *handlers.TelemetryHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Diagnostic: handlers.NewDiagnosticHandler(log, svcs.Diagnostic),
		Telemetry:  handlers.NewTelemetryHandler(log, svcs.Telemetry),
	}
}
