package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/clients/webhook"
	"github.com/optimusmind/diagnostico-backend/internal/platform/apierr"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/repos"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

// PageVisitInput is the telemetry payload forwarded to the downstream
// collector.
type PageVisitInput struct {
	Country   string  `json:"country"`
	RefID     *string `json:"ref_id"`
	URL       string  `json:"url,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
}

// TelemetryService forwards page-visit telemetry. Forwarding failures are
// logged and recorded in the delivery log but never returned to the caller;
// only malformed input is an error.
type TelemetryService interface {
	ForwardPageVisit(ctx context.Context, in PageVisitInput) error
}

type telemetryService struct {
	db         *gorm.DB
	log        *logger.Logger
	deliveries repos.WebhookDeliveryRepo
	collector  webhook.Client
}

func NewTelemetryService(db *gorm.DB, baseLog *logger.Logger, deliveries repos.WebhookDeliveryRepo, collector webhook.Client) TelemetryService {
	return &telemetryService{
		db:         db,
		log:        baseLog.With("service", "TelemetryService"),
		deliveries: deliveries,
		collector:  collector,
	}
}

func (s *telemetryService) ForwardPageVisit(ctx context.Context, in PageVisitInput) error {
	in.Country = strings.TrimSpace(in.Country)
	if in.Country == "" {
		return apierr.Validation(fmt.Errorf("country is required"))
	}
	if in.RefID != nil {
		trimmed := strings.TrimSpace(*in.RefID)
		in.RefID = &trimmed
	}
	if strings.TrimSpace(in.Timestamp) == "" {
		in.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return apierr.Validation(fmt.Errorf("encode telemetry payload: %w", err))
	}

	delivery, auditErr := s.deliveries.Create(ctx, nil, &types.WebhookDelivery{
		TargetURL: s.collector.TargetURL(),
		Payload:   raw,
		Status:    types.WebhookDeliveryPending,
	})
	if auditErr != nil {
		// The audit row is best-effort; forwarding still proceeds.
		s.log.Warn("Failed to record webhook delivery", "error", auditErr)
	}

	res, fwdErr := s.collector.Forward(ctx, in)
	attempts := 0
	if res != nil {
		attempts = res.Attempts
	}

	if fwdErr != nil {
		msg := fwdErr.Error()
		s.log.Warn("Telemetry forward failed",
			"attempts", attempts,
			"error", msg,
		)
		if auditErr == nil {
			if err := s.deliveries.MarkResult(ctx, nil, delivery.ID, types.WebhookDeliveryFailed, attempts, &msg); err != nil {
				s.log.Warn("Failed to mark webhook delivery", "error", err)
			}
		}
		// Swallowed after exhausting retries: telemetry never degrades
		// the primary flow.
		return nil
	}

	if auditErr == nil {
		if err := s.deliveries.MarkResult(ctx, nil, delivery.ID, types.WebhookDeliveryDelivered, attempts, nil); err != nil {
			s.log.Warn("Failed to mark webhook delivery", "error", err)
		}
	}
	s.log.Debug("Telemetry forwarded", "attempts", attempts, "status", res.StatusCode)
	return nil
}
