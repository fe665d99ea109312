package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	WebhookDeliveryPending   = "pending"
	WebhookDeliveryDelivered = "delivered"
	WebhookDeliveryFailed    = "failed"
)

// WebhookDelivery is the audit row for one telemetry forward to the
// downstream collector. Failures are recorded here, never surfaced to the
// visitor.
type WebhookDelivery struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TargetURL string         `gorm:"not null;column:target_url" json:"target_url"`
	Payload   datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload"`
	Status    string         `gorm:"not null;index;column:status" json:"status"`
	Attempts  int            `gorm:"not null;column:attempts" json:"attempts"`
	LastError *string        `gorm:"column:last_error" json:"last_error,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (WebhookDelivery) TableName() string { return "webhook_delivery" }
