package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/optimusmind/diagnostico-backend/internal/diagnostic"
	"github.com/optimusmind/diagnostico-backend/internal/platform/apierr"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/repos"
	"github.com/optimusmind/diagnostico-backend/internal/types"
)

type CreateResult struct {
	RecordID            uuid.UUID         `json:"record_id"`
	SubmissionID        uuid.UUID         `json:"submission_id"`
	ResultsURL          string            `json:"results_url"`
	AreaToImprove       diagnostic.Pillar `json:"area_to_improve"`
	RecommendedTraining string            `json:"recommended_training"`
}

// ResultsQuery carries the raw lookup parameters. A submission id wins when
// both are present; email alone returns the most recent submission.
type ResultsQuery struct {
	SubmissionID string
	Email        string
}

type ResultsView struct {
	SubmissionID      uuid.UUID          `json:"submission_id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Scores            diagnostic.Scores  `json:"-"`
	Summary           diagnostic.Summary `json:"summary"`
	WeakestPillar     diagnostic.Pillar  `json:"weakest_pillar"`
	Narrative         *string            `json:"narrative,omitempty"`
	EnrichmentPending bool               `json:"enrichment_pending"`
	TrainingTitle     string             `json:"recommended_training_title"`
	TrainingURL       string             `json:"recommended_training_url"`
	CreatedAt         time.Time          `json:"created_at"`
}

type DiagnosticService interface {
	Create(ctx context.Context, in diagnostic.SubmissionInput) (*CreateResult, error)
	Results(ctx context.Context, q ResultsQuery) (*ResultsView, error)
	AttachNarrative(ctx context.Context, rawSubmissionID, narrative string) error
}

type diagnosticService struct {
	db        *gorm.DB
	log       *logger.Logger
	records   repos.DiagnosticRecordRepo
	trainings TrainingService
	siteURL   string
}

func NewDiagnosticService(db *gorm.DB, baseLog *logger.Logger, records repos.DiagnosticRecordRepo, trainings TrainingService, siteURL string) DiagnosticService {
	return &diagnosticService{
		db:        db,
		log:       baseLog.With("service", "DiagnosticService"),
		records:   records,
		trainings: trainings,
		siteURL:   strings.TrimRight(strings.TrimSpace(siteURL), "/"),
	}
}

func (s *diagnosticService) Create(ctx context.Context, in diagnostic.SubmissionInput) (*CreateResult, error) {
	sub, err := diagnostic.ValidateSubmission(in)
	if err != nil {
		return nil, apierr.Validation(err)
	}

	weakest := diagnostic.Classify(sub.Scores)

	training, err := s.trainings.Resolve(ctx, weakest)
	if err != nil {
		return nil, err
	}

	rec := s.buildRecord(sub, weakest, training.ID)
	created, err := s.records.Create(ctx, nil, rec)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Never reuse a generated submission id; retry exactly once with
		// a fresh one.
		s.log.Warn("Submission id collision, regenerating", "error", err)
		rec = s.buildRecord(sub, weakest, training.ID)
		created, err = s.records.Create(ctx, nil, rec)
	}
	if err != nil {
		return nil, apierr.Persistence(fmt.Errorf("create diagnostic record: %w", err))
	}

	s.log.Info("Diagnostic record created",
		"record_id", created.ID.String(),
		"submission_id", created.SubmissionID.String(),
		"weakest_pillar", weakest,
	)

	return &CreateResult{
		RecordID:            created.ID,
		SubmissionID:        created.SubmissionID,
		ResultsURL:          fmt.Sprintf("%s/resultados?submission_id=%s", s.siteURL, created.SubmissionID),
		AreaToImprove:       weakest,
		RecommendedTraining: training.Title,
	}, nil
}

func (s *diagnosticService) buildRecord(sub diagnostic.Submission, weakest diagnostic.Pillar, trainingID uuid.UUID) *types.DiagnosticRecord {
	var phone *string
	if sub.Phone != "" {
		p := sub.Phone
		phone = &p
	}
	return &types.DiagnosticRecord{
		SubmissionID:           uuid.New(),
		Name:                   sub.Name,
		Email:                  sub.Email,
		Phone:                  phone,
		ClarityDirection:       sub.Scores.ClarityDirection,
		EmotionalMastery:       sub.Scores.EmotionalMastery,
		EnergyFocus:            sub.Scores.EnergyFocus,
		SelfLeadership:         sub.Scores.SelfLeadership,
		InfluenceCommunication: sub.Scores.InfluenceCommunication,
		ChangeAdaptability:     sub.Scores.ChangeAdaptability,
		WeakestPillar:          string(weakest),
		TrainingID:             trainingID,
	}
}

func (s *diagnosticService) Results(ctx context.Context, q ResultsQuery) (*ResultsView, error) {
	rec, err := s.lookup(ctx, q)
	if err != nil {
		return nil, err
	}

	scores := recordScores(rec)
	summary := diagnostic.Present(scores, rec.WeakestPillar)
	title, embedURL := s.trainings.ResolveForDisplay(ctx, rec)

	return &ResultsView{
		SubmissionID:      rec.SubmissionID,
		Name:              rec.Name,
		Email:             rec.Email,
		Scores:            scores,
		Summary:           summary,
		WeakestPillar:     summary.WeakestPillar,
		Narrative:         rec.Narrative,
		EnrichmentPending: rec.Narrative == nil,
		TrainingTitle:     title,
		TrainingURL:       embedURL,
		CreatedAt:         rec.CreatedAt,
	}, nil
}

func (s *diagnosticService) lookup(ctx context.Context, q ResultsQuery) (*types.DiagnosticRecord, error) {
	rawID := strings.TrimSpace(q.SubmissionID)
	email := strings.ToLower(strings.TrimSpace(q.Email))

	switch {
	case rawID != "":
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, apierr.Validation(fmt.Errorf("invalid submission id"))
		}
		rec, err := s.records.GetBySubmissionID(ctx, nil, id)
		if err != nil {
			if errors.Is(err, repos.ErrNotFound) {
				return nil, apierr.NotFound(fmt.Errorf("diagnostic results not found"))
			}
			return nil, apierr.Persistence(err)
		}
		return rec, nil
	case email != "":
		if !diagnostic.ValidEmail(email) {
			return nil, apierr.Validation(fmt.Errorf("invalid email format"))
		}
		rec, err := s.records.GetByEmail(ctx, nil, email, true)
		if err != nil {
			if errors.Is(err, repos.ErrNotFound) {
				return nil, apierr.NotFound(fmt.Errorf("diagnostic results not found"))
			}
			return nil, apierr.Persistence(err)
		}
		return rec, nil
	default:
		return nil, apierr.Validation(fmt.Errorf("submission_id or email is required"))
	}
}

func (s *diagnosticService) AttachNarrative(ctx context.Context, rawSubmissionID, narrative string) error {
	id, err := uuid.Parse(strings.TrimSpace(rawSubmissionID))
	if err != nil {
		return apierr.Validation(fmt.Errorf("invalid submission id"))
	}
	narrative = strings.TrimSpace(narrative)
	if narrative == "" {
		return apierr.Validation(fmt.Errorf("narrative is required"))
	}

	if err := s.records.SetNarrative(ctx, nil, id, narrative); err != nil {
		switch {
		case errors.Is(err, repos.ErrNotFound):
			return apierr.NotFound(fmt.Errorf("diagnostic results not found"))
		case errors.Is(err, repos.ErrNarrativeAlreadySet):
			return apierr.Validation(err)
		default:
			return apierr.Persistence(err)
		}
	}

	s.log.Info("Narrative attached", "submission_id", id.String())
	return nil
}

func recordScores(rec *types.DiagnosticRecord) diagnostic.Scores {
	return diagnostic.Scores{
		ClarityDirection:       rec.ClarityDirection,
		EmotionalMastery:       rec.EmotionalMastery,
		EnergyFocus:            rec.EnergyFocus,
		SelfLeadership:         rec.SelfLeadership,
		InfluenceCommunication: rec.InfluenceCommunication,
		ChangeAdaptability:     rec.ChangeAdaptability,
	}
}
