package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type scriptedSource struct {
	mu      sync.Mutex
	queries int
	foundAt int // lookup index (1-based) that first returns true; 0 = never
	errAt   int // lookup index that returns an error; 0 = never
	release chan struct{}
}

func (s *scriptedSource) Lookup(ctx context.Context, submissionID uuid.UUID) (bool, error) {
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	if s.errAt != 0 && s.queries == s.errAt {
		return false, errors.New("transient store failure")
	}
	return s.foundAt != 0 && s.queries >= s.foundAt, nil
}

func (s *scriptedSource) queryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

func newTestPoller(t *testing.T, src Source, maxAttempts int) *Poller {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return New(log, src, Config{
		Interval:    time.Millisecond,
		MaxAttempts: maxAttempts,
	})
}

func TestWaitResolvesExactlyWhenRecordAppears(t *testing.T) {
	src := &scriptedSource{foundAt: 12}
	p := newTestPoller(t, src, 12)

	var updates []Update
	state, err := p.Wait(context.Background(), uuid.New(), func(u Update) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if state != StateResolved {
		t.Fatalf("state: want=%s got=%s", StateResolved, state)
	}
	if got := src.queryCount(); got != 12 {
		t.Fatalf("queries: want=12 got=%d", got)
	}
	// Eleven misses precede the resolving attempt.
	if len(updates) != 11 {
		t.Fatalf("updates: want=11 got=%d", len(updates))
	}
	if updates[len(updates)-1].Attempt != 11 {
		t.Fatalf("last update attempt: want=11 got=%d", updates[len(updates)-1].Attempt)
	}
}

func TestWaitTimesOutAtCeilingAndStopsQuerying(t *testing.T) {
	src := &scriptedSource{}
	p := newTestPoller(t, src, 12)

	state, err := p.Wait(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if state != StateTimedOut {
		t.Fatalf("state: want=%s got=%s", StateTimedOut, state)
	}
	if got := src.queryCount(); got != 12 {
		t.Fatalf("queries at timeout: want=12 got=%d", got)
	}

	// No scheduled work remains after the terminal state.
	time.Sleep(20 * time.Millisecond)
	if got := src.queryCount(); got != 12 {
		t.Fatalf("queries after timeout: want=12 got=%d", got)
	}
}

func TestWaitAbsorbsTransientSourceErrors(t *testing.T) {
	src := &scriptedSource{foundAt: 3, errAt: 2}
	p := newTestPoller(t, src, 12)

	state, err := p.Wait(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if state != StateResolved {
		t.Fatalf("state: want=%s got=%s", StateResolved, state)
	}
	if got := src.queryCount(); got != 3 {
		t.Fatalf("queries: want=3 got=%d", got)
	}
}

func TestWaitAbortsOnContextCancel(t *testing.T) {
	src := &scriptedSource{}
	p := newTestPoller(t, src, 1000)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan State, 1)
	go func() {
		state, _ := p.Wait(ctx, uuid.New(), nil)
		done <- state
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case state := <-done:
		if state != StateAborted {
			t.Fatalf("state: want=%s got=%s", StateAborted, state)
		}
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop after cancel")
	}
}

func TestWaitRejectsConcurrentLoopForSameSubmission(t *testing.T) {
	release := make(chan struct{})
	src := &scriptedSource{release: release}
	p := newTestPoller(t, src, 12)
	id := uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	done := make(chan struct{})
	go func() {
		close(started)
		_, _ = p.Wait(ctx, id, nil)
		close(done)
	}()

	<-started
	time.Sleep(5 * time.Millisecond)
	if _, err := p.Wait(ctx, id, nil); !errors.Is(err, ErrAlreadyPolling) {
		t.Fatalf("want ErrAlreadyPolling, got %v", err)
	}

	// A different submission id is not blocked.
	otherCtx, otherCancel := context.WithCancel(context.Background())
	otherCancel()
	if _, err := p.Wait(otherCtx, uuid.New(), nil); errors.Is(err, ErrAlreadyPolling) {
		t.Fatalf("different submission must not be blocked")
	}

	cancel()
	close(release)
	<-done

	// After the first loop ends the id can be polled again.
	doneCtx, doneCancel := context.WithCancel(context.Background())
	doneCancel()
	if _, err := p.Wait(doneCtx, id, nil); errors.Is(err, ErrAlreadyPolling) {
		t.Fatalf("slot not released after loop ended")
	}
}
