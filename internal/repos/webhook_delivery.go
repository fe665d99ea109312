package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

type WebhookDeliveryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, delivery *types.WebhookDelivery) (*types.WebhookDelivery, error)
	MarkResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, attempts int, lastError *string) error
}

type webhookDeliveryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWebhookDeliveryRepo(db *gorm.DB, baseLog *logger.Logger) WebhookDeliveryRepo {
	repoLog := baseLog.With("repo", "WebhookDeliveryRepo")
	return &webhookDeliveryRepo{db: db, log: repoLog}
}

func (r *webhookDeliveryRepo) Create(ctx context.Context, tx *gorm.DB, delivery *types.WebhookDelivery) (*types.WebhookDelivery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if delivery == nil {
		return nil, errors.New("nil webhook delivery")
	}
	if delivery.ID == uuid.Nil {
		delivery.ID = uuid.New()
	}

	if err := transaction.WithContext(ctx).Create(delivery).Error; err != nil {
		return nil, err
	}
	return delivery, nil
}

func (r *webhookDeliveryRepo) MarkResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, attempts int, lastError *string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.WebhookDelivery{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"attempts":   attempts,
			"last_error": lastError,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
