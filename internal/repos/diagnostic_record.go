package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

// ErrNotFound is the shared lookup-miss sentinel. Callers decide whether a
// miss means "not found" or "not ready yet".
var ErrNotFound = errors.New("record not found")

// ErrNarrativeAlreadySet guards the write-once enrichment field.
var ErrNarrativeAlreadySet = errors.New("narrative already set")

type DiagnosticRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rec *types.DiagnosticRecord) (*types.DiagnosticRecord, error)
	GetBySubmissionID(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (*types.DiagnosticRecord, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string, mostRecent bool) (*types.DiagnosticRecord, error)
	SetNarrative(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID, narrative string) error
}

type diagnosticRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiagnosticRecordRepo(db *gorm.DB, baseLog *logger.Logger) DiagnosticRecordRepo {
	repoLog := baseLog.With("repo", "DiagnosticRecordRepo")
	return &diagnosticRecordRepo{db: db, log: repoLog}
}

func (r *diagnosticRecordRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.DiagnosticRecord) (*types.DiagnosticRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if rec == nil {
		return nil, errors.New("nil diagnostic record")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	// Single-row insert of the fully populated record; either all fields
	// land or none do.
	if err := transaction.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *diagnosticRecordRepo) GetBySubmissionID(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID) (*types.DiagnosticRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rec types.DiagnosticRecord
	err := transaction.WithContext(ctx).
		Preload("Training").
		Where("submission_id = ?", submissionID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *diagnosticRecordRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string, mostRecent bool) (*types.DiagnosticRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	query := transaction.WithContext(ctx).
		Preload("Training").
		Where("email = ?", email)
	if mostRecent {
		query = query.Order("created_at DESC")
	}

	var rec types.DiagnosticRecord
	if err := query.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *diagnosticRecordRepo) SetNarrative(ctx context.Context, tx *gorm.DB, submissionID uuid.UUID, narrative string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	// Narrative transitions absent -> present exactly once; a second write
	// matches no row.
	res := transaction.WithContext(ctx).
		Model(&types.DiagnosticRecord{}).
		Where("submission_id = ? AND narrative IS NULL", submissionID).
		Update("narrative", narrative)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := transaction.WithContext(ctx).
			Model(&types.DiagnosticRecord{}).
			Where("submission_id = ?", submissionID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNarrativeAlreadySet
		}
		return ErrNotFound
	}
	return nil
}
