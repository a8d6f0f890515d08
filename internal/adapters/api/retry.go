package api

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
)

var _ ports.HTTPClient = (*RetryClient)(nil)

// RetryClient repeats requests that failed on the network or with a 5xx.
// The fetch clients never retry on their own; loaders opt in by wrapping.
type RetryClient struct {
	inner      ports.HTTPClient
	baseDelay  time.Duration
	maxRetries int
	logger     *slog.Logger
	jitter     func() time.Duration
}

func NewRetryClient(inner ports.HTTPClient, cfg config.RetryConfig, logger *slog.Logger) *RetryClient {
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
		logger:     logger,
		jitter: func() time.Duration {
			return time.Duration(rand.Intn(100)) * time.Millisecond
		},
	}
}

// Do retries only idempotent methods. POST and PATCH carry no idempotency
// key, so a failure after the backend committed the write would duplicate it.
func (r *RetryClient) Do(ctx context.Context, req domain.RequestDescriptor, out any) error {
	if !idempotent(req.Method()) {
		return r.inner.Do(ctx, req, out)
	}

	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.inner.Do(ctx, req, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !domain.IsRetryable(err) {
			return err
		}

		if attempt < r.maxRetries-1 {
			delay := r.backoff(attempt)
			r.logger.Warn("retrying api request",
				"request", req.String(),
				"attempt", attempt+1,
				"delay", delay,
				"error", err,
			)
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// backoff doubles the base delay per attempt and adds jitter.
func (r *RetryClient) backoff(attempt int) time.Duration {
	return r.baseDelay*time.Duration(1<<attempt) + r.jitter()
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
