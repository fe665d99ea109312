package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

func testClient(t *testing.T, targetURL string, maxRetries int) Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c, err := New(log, Config{
		TargetURL:    targetURL,
		Timeout:      2 * time.Second,
		MaxRetries:   maxRetries,
		RetryBackoff: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestForwardSucceedsAfterTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 3)
	res, err := c.Forward(context.Background(), map[string]any{"country": "MX"})
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status: want=200 got=%d", res.StatusCode)
	}
	if res.Attempts != 3 {
		t.Fatalf("attempts: want=3 got=%d", res.Attempts)
	}
}

func TestForwardExhaustsRetryBudget(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 2)
	res, err := c.Forward(context.Background(), map[string]any{"country": "MX"})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("want *HTTPError, got %T: %v", err, err)
	}
	if httpErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status: want=500 got=%d", httpErr.StatusCode)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("downstream calls: want=3 got=%d", got)
	}
	if res.Attempts != 3 {
		t.Fatalf("attempts: want=3 got=%d", res.Attempts)
	}
}

func TestForwardDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 3)
	if _, err := c.Forward(context.Background(), map[string]any{"country": "MX"}); err == nil {
		t.Fatalf("expected error for 400 response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("400 must not be retried: calls=%d", got)
	}
}

func TestForwardCancelInterruptsBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	c, err := New(log, Config{
		TargetURL:    srv.URL,
		Timeout:      2 * time.Second,
		MaxRetries:   3,
		RetryBackoff: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err = c.Forward(ctx, map[string]any{"country": "MX"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("cancel did not interrupt backoff: waited %s", elapsed)
	}
}

func TestNewRequiresTargetURL(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	if _, err := New(log, Config{}); err == nil {
		t.Fatalf("expected error for missing target URL")
	}
}
