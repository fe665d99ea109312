// Package webhook forwards telemetry payloads to the downstream analytics
// collector with a bounded retry budget.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/optimusmind/diagnostico-backend/internal/platform/apierr"
	"github.com/optimusmind/diagnostico-backend/internal/platform/envutil"
	"github.com/optimusmind/diagnostico-backend/internal/platform/httpx"
	"github.com/optimusmind/diagnostico-backend/internal/platform/logger"
)

type Client interface {
	Forward(ctx context.Context, payload any) (*Result, error)
	TargetURL() string
}

type Config struct {
	TargetURL    string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("WEBHOOK_TIMEOUT_SECONDS", 10)
	maxRetries := envutil.Int("WEBHOOK_MAX_RETRIES", 3)
	return Config{
		TargetURL:    envutil.String("WEBHOOK_TARGET_URL", ""),
		Timeout:      time.Duration(timeoutSec) * time.Second,
		MaxRetries:   maxRetries,
		RetryBackoff: envutil.Duration("WEBHOOK_RETRY_BACKOFF", time.Second),
	}
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

// NewDisabled returns a client that drops every payload. Used when no
// collector target is configured.
func NewDisabled(log *logger.Logger) Client {
	return &disabledClient{log: log.With("client", "WebhookClient")}
}

type disabledClient struct {
	log *logger.Logger
}

func (c *disabledClient) Forward(ctx context.Context, payload any) (*Result, error) {
	c.log.Debug("Collector disabled, dropping payload")
	return &Result{}, nil
}

func (c *disabledClient) TargetURL() string { return "" }

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.TargetURL = strings.TrimSpace(cfg.TargetURL)
	if cfg.TargetURL == "" {
		return nil, fmt.Errorf("missing WEBHOOK_TARGET_URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}

	return &client{
		log:        log.With("client", "WebhookClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type Result struct {
	StatusCode int
	Attempts   int
}

type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "webhook: <nil error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 1000 {
		msg = msg[:1000] + "..."
	}
	return fmt.Sprintf("webhook http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) TargetURL() string { return c.cfg.TargetURL }

func (c *client) Forward(ctx context.Context, payload any) (*Result, error) {
	if c == nil || c.httpClient == nil {
		return nil, fmt.Errorf("webhook client unavailable")
	}

	backoff := c.cfg.RetryBackoff
	attempts := 0

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return &Result{Attempts: attempts}, ctx.Err()
		}

		attempts++
		resp, err := c.doOnce(ctx, payload)
		if err == nil {
			return &Result{StatusCode: resp.StatusCode, Attempts: attempts}, nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.cfg.MaxRetries {
			if httpx.IsTimeoutError(err) {
				err = apierr.UpstreamTimeout(err)
			}
			return &Result{Attempts: attempts}, err
		}

		sleepFor := httpx.RetryAfterDuration(resp, backoff, 10*time.Second)
		sleepFor = httpx.JitterSleep(sleepFor)

		c.log.Warn("Webhook forward retrying",
			"attempt", attempt+1,
			"max_retries", c.cfg.MaxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)

		timer := time.NewTimer(sleepFor)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &Result{Attempts: attempts}, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}

	return nil, errors.New("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, payload any) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TargetURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Collectors often reply with an empty body; read it only for error
	// reporting.
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, nil
}
