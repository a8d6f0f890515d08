// Package render hosts server-side render passes. Every pass gets its own
// fetch client, cache and composables, so nothing a pass loads or sends is
// visible to another.
package render

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/DanielPopoola/shelter-fetch/internal/adapters/api"
	"github.com/DanielPopoola/shelter-fetch/internal/adapters/observability"
	"github.com/DanielPopoola/shelter-fetch/internal/asyncdata"
	"github.com/DanielPopoola/shelter-fetch/internal/config"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
	"github.com/DanielPopoola/shelter-fetch/internal/resources"
)

type Option func(*Renderer)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHTTPClient shares one connection pool across passes.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Renderer) {
		if c != nil {
			r.httpClient = c
		}
	}
}

func WithRetry(cfg config.RetryConfig) Option {
	return func(r *Renderer) {
		r.retry = cfg
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(r *Renderer) {
		r.meter = m
	}
}

// Renderer is configured once per process and hands out passes.
type Renderer struct {
	api        config.APIConfig
	retry      config.RetryConfig
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
	meter      metric.Meter
}

func NewRenderer(cfg config.APIConfig, opts ...Option) *Renderer {
	r := &Renderer{
		api:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Pass is one render. Discard it when the render is done.
type Pass struct {
	ID        uuid.UUID
	Cache     *asyncdata.Cache
	Resources *resources.Composables
	logger    *slog.Logger
}

func (r *Renderer) NewPass(ctx context.Context) (*Pass, error) {
	id := uuid.New()
	logger := r.logger.With("render_pass", id.String())

	rpc, err := api.NewRenderPassClient(r.api, id,
		api.WithHTTPClient(r.httpClient),
		api.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}

	var client ports.HTTPClient = observability.NewClient(rpc,
		observability.WithLogger(logger),
		observability.WithTracer(r.tracer),
		observability.WithMeter(r.meter),
	)
	if r.retry.MaxRetries > 0 {
		client = api.NewRetryClient(client, r.retry, logger)
	}

	cacheOpts := []asyncdata.Option{asyncdata.WithLogger(logger)}
	if r.meter != nil {
		cacheOpts = append(cacheOpts, asyncdata.WithMeter(r.meter))
	}
	cache := asyncdata.NewCache(cacheOpts...)

	logger.DebugContext(ctx, "render pass started")
	return &Pass{
		ID:        id,
		Cache:     cache,
		Resources: resources.New(cache, client),
		logger:    logger,
	}, nil
}

// Fetch is a unit of work for Prefetch.
type Fetch func(ctx context.Context) error

// Into loads res and stores its result in dst. The fetch fails with the
// load's error, or with the context's error if ctx ended first.
func Into[T any](dst *asyncdata.Result[T], res resources.Resource[T]) Fetch {
	return func(ctx context.Context) error {
		*dst = res.Load(ctx)
		if dst.Pending {
			return ctx.Err()
		}
		return dst.Err
	}
}

// Optional is Into for data the page can render without: its error is left
// in dst and does not fail the prefetch.
func Optional[T any](dst *asyncdata.Result[T], res resources.Resource[T]) Fetch {
	return func(ctx context.Context) error {
		*dst = res.Load(ctx)
		return nil
	}
}

// Prefetch runs fetches concurrently, waits for all of them and returns the
// first error. A failing fetch does not cut the others short.
func (p *Pass) Prefetch(ctx context.Context, fetches ...Fetch) error {
	var g errgroup.Group
	for _, f := range fetches {
		g.Go(func() error {
			return f(ctx)
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.DebugContext(ctx, "prefetch failed", "error", err)
		return err
	}
	return nil
}
