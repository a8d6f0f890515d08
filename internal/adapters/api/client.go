package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
)

const maxResponseBytes = 10 << 20

// Option configures a fetch client.
type Option func(*transport)

// WithHTTPClient shares an existing http.Client, e.g. one connection pool
// across render passes.
func WithHTTPClient(c *http.Client) Option {
	return func(t *transport) {
		if c != nil {
			t.httpClient = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// transport is the request/response plumbing both fetch clients share.
type transport struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func newTransport(cfg config.APIConfig, opts ...Option) (transport, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return transport{}, errors.New("api base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return transport{}, fmt.Errorf("invalid api base URL %q", cfg.BaseURL)
	}

	t := transport{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&t)
		}
	}
	return t, nil
}

// BaseURL is the origin every request path is joined to.
func (t transport) BaseURL() string {
	return t.baseURL
}

func (t transport) send(ctx context.Context, req domain.RequestDescriptor, header http.Header, out any) error {
	fullURL := t.baseURL + req.Path()

	var bodyReader io.Reader
	if body := req.Body(); body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method(), fullURL, bodyReader)
	if err != nil {
		return &domain.InvalidRequestError{Reason: err.Error()}
	}
	httpReq.Header = header
	if out != nil && httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return &domain.NetworkError{Method: req.Method(), URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.NetworkError{Method: req.Method(), URL: fullURL, Err: fmt.Errorf("error reading response: %w", err)}
	}

	t.logger.Debug("api request completed",
		"method", req.Method(),
		"url", fullURL,
		"status", resp.StatusCode,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.HTTPError{
			Method: req.Method(),
			URL:    fullURL,
			Status: resp.StatusCode,
			Body:   body,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.DecodeError{URL: fullURL, Body: body, Err: err}
	}
	return nil
}
