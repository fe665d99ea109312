// Package results is the HTTP client for the get-results endpoint, used by
// consumers that wait for a diagnostic to become available.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/optimusmind/diagnostico-backend/internal/platform/envutil"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("RESULTS_TIMEOUT_SECONDS", 10)
	return Config{
		BaseURL: envutil.String("RESULTS_BASE_URL", "http://localhost:8080"),
		Timeout: time.Duration(timeoutSec) * time.Second,
	}
}

type Client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing RESULTS_BASE_URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		log:        log.With("client", "ResultsClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Response is the get-results payload subset a polling consumer cares about.
type Response struct {
	SubmissionID      string          `json:"submission_id"`
	WeakestPillar     string          `json:"weakest_pillar"`
	EnrichmentPending bool            `json:"enrichment_pending"`
	Narrative         string          `json:"narrative,omitempty"`
	Summary           json.RawMessage `json:"summary"`
	RecommendedTitle  string          `json:"recommended_training_title"`
	RecommendedURL    string          `json:"recommended_training_url"`
}

// Get fetches the stored results for a submission id. A 404 is reported as
// (nil, false, nil): not an error, the record simply does not exist yet.
func (c *Client) Get(ctx context.Context, submissionID uuid.UUID) (*Response, bool, error) {
	u := fmt.Sprintf("%s/api/diagnostics/results?submission_id=%s",
		c.cfg.BaseURL, url.QueryEscape(submissionID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	case resp.StatusCode != http.StatusOK:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, false, fmt.Errorf("get results http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode results: %w", err)
	}
	return &out, true, nil
}

// Lookup adapts the client to the poller's source contract.
func (c *Client) Lookup(ctx context.Context, submissionID uuid.UUID) (bool, error) {
	_, found, err := c.Get(ctx, submissionID)
	return found, err
}
