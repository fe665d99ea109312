package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

type TrainingCatalogRepo interface {
	GetByPillar(ctx context.Context, tx *gorm.DB, pillarKey string) (*types.TrainingCatalogEntry, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrainingCatalogEntry, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.TrainingCatalogEntry, error)
}

type trainingCatalogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingCatalogRepo(db *gorm.DB, baseLog *logger.Logger) TrainingCatalogRepo {
	repoLog := baseLog.With("repo", "TrainingCatalogRepo")
	return &trainingCatalogRepo{db: db, log: repoLog}
}

func (r *trainingCatalogRepo) GetByPillar(ctx context.Context, tx *gorm.DB, pillarKey string) (*types.TrainingCatalogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var entry types.TrainingCatalogEntry
	err := transaction.WithContext(ctx).
		Where("pillar_key = ?", pillarKey).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *trainingCatalogRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrainingCatalogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var entry types.TrainingCatalogEntry
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *trainingCatalogRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TrainingCatalogEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var entries []*types.TrainingCatalogEntry
	if err := transaction.WithContext(ctx).
		Order("pillar_key ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
