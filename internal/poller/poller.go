// Package poller waits for a diagnostic record to become available. Record
// creation happens out of band relative to the waiting consumer, so the
// completion signal is record existence: the first successful lookup
// resolves the wait.
package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type State string

const (
	StatePolling  State = "polling"
	StateResolved State = "resolved"
	StateTimedOut State = "timed_out"
	StateAborted  State = "aborted"
)

// ErrAlreadyPolling is returned when a second loop is started for a
// submission id this poller instance is already waiting on.
var ErrAlreadyPolling = errors.New("poll loop already running for submission")

// Source answers whether a record exists yet for a submission id.
type Source interface {
	Lookup(ctx context.Context, submissionID uuid.UUID) (bool, error)
}

type Config struct {
	Interval    time.Duration
	MaxAttempts int
	Messages    []string
}

// DefaultMessages rotate on the processing view while the visitor waits.
var DefaultMessages = []string{
	"Escoger significa renunciar.",
	"La velocidad viene de la alineación, no del esfuerzo.",
	"Todo lo que existe, viene de un pensamiento.",
	"No se cambia lo que no se observa.",
	"Si quieres que algo suceda, debes liderarlo.",
}

// Update is emitted after every missed attempt so a UI can advance its
// progress indicator and rotating message.
type Update struct {
	Attempt int
	Message string
}

type Poller struct {
	log *logger.Logger
	src Source
	cfg Config

	mu     sync.Mutex
	active map[uuid.UUID]struct{}
}

func New(baseLog *logger.Logger, src Source, cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 12
	}
	if len(cfg.Messages) == 0 {
		cfg.Messages = DefaultMessages
	}
	return &Poller{
		log:    baseLog.With("component", "ResultPoller"),
		src:    src,
		cfg:    cfg,
		active: make(map[uuid.UUID]struct{}),
	}
}

// Wait polls the source until the record exists, the attempt ceiling is
// reached, or ctx is cancelled. Attempts run strictly one at a time: the
// next is scheduled only after the previous lookup returns. onUpdate may be
// nil.
func (p *Poller) Wait(ctx context.Context, submissionID uuid.UUID, onUpdate func(Update)) (State, error) {
	if err := p.claim(submissionID); err != nil {
		return "", err
	}
	defer p.release(submissionID)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	attempt := 0
	for {
		if ctx.Err() != nil {
			return StateAborted, ctx.Err()
		}

		attempt++
		found, err := p.src.Lookup(ctx, submissionID)
		if err != nil {
			if ctx.Err() != nil {
				return StateAborted, ctx.Err()
			}
			// Transient source failures count as a miss; the loop
			// still terminates at the attempt ceiling.
			p.log.Warn("Result lookup failed, continuing",
				"submission_id", submissionID.String(),
				"attempt", attempt,
				"error", err,
			)
			found = false
		}
		if found {
			p.log.Info("Result available",
				"submission_id", submissionID.String(),
				"attempt", attempt,
			)
			return StateResolved, nil
		}
		if attempt >= p.cfg.MaxAttempts {
			p.log.Info("Result wait timed out",
				"submission_id", submissionID.String(),
				"attempts", attempt,
			)
			return StateTimedOut, nil
		}

		if onUpdate != nil {
			onUpdate(Update{
				Attempt: attempt,
				Message: p.cfg.Messages[attempt%len(p.cfg.Messages)],
			})
		}

		select {
		case <-ctx.Done():
			return StateAborted, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) claim(submissionID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, running := p.active[submissionID]; running {
		return ErrAlreadyPolling
	}
	p.active[submissionID] = struct{}{}
	return nil
}

func (p *Poller) release(submissionID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, submissionID)
}
