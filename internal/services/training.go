package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/catalog"
	"github.com/optimusmind/diagnostico-backend/internal/diagnostic"
	"github.com/optimusmind/diagnostico-backend/internal/platform/apierr"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/repos"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

// TrainingService resolves the recommended training for a pillar. At
// record-creation time a miss is fatal; at display time it degrades to the
// static catalog fallback.
type TrainingService interface {
	Resolve(ctx context.Context, pillar diagnostic.Pillar) (*types.TrainingCatalogEntry, error)
	ResolveForDisplay(ctx context.Context, rec *types.DiagnosticRecord) (title, embedURL string)
}

type trainingService struct {
	db        *gorm.DB
	log       *logger.Logger
	trainings repos.TrainingCatalogRepo
}

func NewTrainingService(db *gorm.DB, baseLog *logger.Logger, trainings repos.TrainingCatalogRepo) TrainingService {
	return &trainingService{
		db:        db,
		log:       baseLog.With("service", "TrainingService"),
		trainings: trainings,
	}
}

func (s *trainingService) Resolve(ctx context.Context, pillar diagnostic.Pillar) (*types.TrainingCatalogEntry, error) {
	entry, err := s.trainings.GetByPillar(ctx, nil, string(pillar))
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, apierr.Resolution(fmt.Errorf("no training found for pillar %s", pillar))
		}
		return nil, apierr.Persistence(fmt.Errorf("resolve training for %s: %w", pillar, err))
	}
	return entry, nil
}

func (s *trainingService) ResolveForDisplay(ctx context.Context, rec *types.DiagnosticRecord) (string, string) {
	if rec == nil {
		return "", ""
	}
	if rec.Training != nil {
		return rec.Training.Title, rec.Training.EmbedURL
	}

	entry, err := s.trainings.GetByID(ctx, nil, rec.TrainingID)
	if err == nil {
		return entry.Title, entry.EmbedURL
	}
	s.log.Warn("Catalog lookup failed at display time, using fallback",
		"record_id", rec.ID.String(),
		"error", err,
	)

	pillar, ok := diagnostic.ParsePillar(rec.WeakestPillar)
	if !ok {
		pillar = diagnostic.Classify(recordScores(rec))
	}
	if fb, ok := catalog.Fallback(pillar); ok {
		return fb.Title, fb.EmbedURL
	}
	return "", ""
}
