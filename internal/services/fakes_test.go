package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/repos"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

type fakeDiagnosticRecordRepo struct {
	mu      sync.Mutex
	records []*types.DiagnosticRecord
	failAll error
}

func (f *fakeDiagnosticRecordRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.DiagnosticRecord) (*types.DiagnosticRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	for _, existing := range f.records {
		if existing.SubmissionID == rec.SubmissionID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	clone := *rec
	f.records = append(f.records, &clone)
	return rec, nil
}

func (f *fakeDiagnosticRecordRepo) GetBySubmissionID(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (*types.DiagnosticRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, rec := range f.records {
		if rec.SubmissionID == submissionID {
			clone := *rec
			return &clone, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (f *fakeDiagnosticRecordRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string, mostRecent bool) (*types.DiagnosticRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *types.DiagnosticRecord
	for _, rec := range f.records {
		if rec.Email != email {
			continue
		}
		if best == nil || (mostRecent && rec.CreatedAt.After(best.CreatedAt)) {
			best = rec
		}
	}
	if best == nil {
		return nil, repos.ErrNotFound
	}
	clone := *best
	return &clone, nil
}

func (f *fakeDiagnosticRecordRepo) SetNarrative(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID, narrative string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.SubmissionID == submissionID {
			if rec.Narrative != nil {
				return repos.ErrNarrativeAlreadySet
			}
			n := narrative
			rec.Narrative = &n
			return nil
		}
	}
	return repos.ErrNotFound
}

type fakeTrainingCatalogRepo struct {
	entries []*types.TrainingCatalogEntry
}

func (f *fakeTrainingCatalogRepo) GetByPillar(ctx context.Context, tx *gorm.DB, pillarKey string) (*types.TrainingCatalogEntry, error) {
	for _, e := range f.entries {
		if e.PillarKey == pillarKey {
			return e, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (f *fakeTrainingCatalogRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrainingCatalogEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repos.ErrNotFound
}

func (f *fakeTrainingCatalogRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.TrainingCatalogEntry, error) {
	return f.entries, nil
}

type fakeWebhookDeliveryRepo struct {
	mu         sync.Mutex
	created    []*types.WebhookDelivery
	lastStatus string
	lastTries  int
	lastError  *string
}

func (f *fakeWebhookDeliveryRepo) Create(ctx context.Context, tx *gorm.DB, delivery *types.WebhookDelivery) (*types.WebhookDelivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if delivery.ID == uuid.Nil {
		delivery.ID = uuid.New()
	}
	f.created = append(f.created, delivery)
	return delivery, nil
}

func (f *fakeWebhookDeliveryRepo) MarkResult(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, attempts int, lastError *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastStatus = status
	f.lastTries = attempts
	f.lastError = lastError
	return nil
}
