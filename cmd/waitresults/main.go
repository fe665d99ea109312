package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/optimusmind/diagnostico-backend/internal/clients/results"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
	"github.com/optimusmind/diagnostico-backend/internal/poller"
)

// waitresults blocks until the diagnostic results for a submission become
// available, printing the rotating wait messages the processing view shows.
func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "diagnostico API base URL")
	rawID := flag.String("submission-id", "", "submission id to wait for")
	interval := flag.Duration("interval", 5*time.Second, "time between lookups")
	maxAttempts := flag.Int("max-attempts", 12, "lookup ceiling before giving up")
	flag.Parse()

	submissionID, err := uuid.Parse(*rawID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -submission-id: %v\n", err)
		os.Exit(2)
	}

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	client, err := results.New(log, results.Config{BaseURL: *baseURL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init results client: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := poller.New(log, client, poller.Config{
		Interval:    *interval,
		MaxAttempts: *maxAttempts,
	})
	state, err := p.Wait(ctx, submissionID, func(u poller.Update) {
		fmt.Printf("[%d/%d] %s\n", u.Attempt, *maxAttempts, u.Message)
	})
	if err != nil && state != poller.StateAborted {
		fmt.Fprintf(os.Stderr, "wait failed: %v\n", err)
		os.Exit(1)
	}

	switch state {
	case poller.StateResolved:
		fmt.Printf("results ready: %s/api/diagnostics/results?submission_id=%s\n", *baseURL, submissionID)
	case poller.StateTimedOut:
		fmt.Println("results not ready yet, try again later")
		os.Exit(1)
	case poller.StateAborted:
		fmt.Println("aborted")
		os.Exit(130)
	}
}
