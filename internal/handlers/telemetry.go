package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/optimusmind/diagnostico-backend/internal/platform/apierr"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/services"
)

// forwardTimeout bounds the detached forward, covering the collector
// client's full retry budget.
const forwardTimeout = 2 * time.Minute

type TelemetryHandler struct {
	log          *logger.Logger
	telemetrySvc services.TelemetryService
}

func NewTelemetryHandler(log *logger.Logger, tsvc services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{
		log:          log.With("handler", "TelemetryHandler"),
		telemetrySvc: tsvc,
	}
}

type pageVisitRequest struct {
	Country   string  `json:"country" binding:"required"`
	RefID     *string `json:"ref_id"`
	URL       string  `json:"url"`
	Timestamp string  `json:"timestamp"`
}

// POST /api/telemetry/page-visit
// Accepted immediately; forwarding happens off the request goroutine so
// collector latency never reaches the visitor.
func (h *TelemetryHandler) RecordPageVisit(c *gin.Context) {
	var req pageVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.Validation(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
		defer cancel()
		err := h.telemetrySvc.ForwardPageVisit(ctx, services.PageVisitInput{
			Country:   req.Country,
			RefID:     req.RefID,
			URL:       req.URL,
			Timestamp: req.Timestamp,
		})
		if err != nil {
			h.log.Warn("Page visit rejected", "error", err)
		}
	}()

	c.Status(http.StatusAccepted)
}
