package observability

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
)

const tracerName = "github.com/DanielPopoola/shelter-fetch/internal/adapters/observability"

// Client decorates an HTTPClient with tracing, logging, and metrics.
type Client struct {
	inner   ports.HTTPClient
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics clientMetrics
}

type Option func(*Client)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(c *Client) {
		c.metrics = newClientMetrics(m)
	}
}

func NewClient(inner ports.HTTPClient, opts ...Option) *Client {
	c := &Client{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newClientMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.tracer == nil {
		c.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return c
}

func (c *Client) Do(ctx context.Context, req domain.RequestDescriptor, out any) error {
	ctx, span := c.tracer.Start(ctx, "HTTPClient "+req.Method(),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method()),
			attribute.String("url.path", req.Path()),
			attribute.Bool("shelter.auth_required", req.RequireAuth()),
		))
	defer span.End()

	start := time.Now()
	err := c.inner.Do(ctx, req, out)
	elapsed := time.Since(start)

	result := outcomeOf(err)
	c.metrics.record(ctx, req.Method(), result, elapsed)

	var httpErr *domain.HTTPError
	if errors.As(err, &httpErr) {
		span.SetAttributes(attribute.Int("http.response.status_code", httpErr.Status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log(ctx, slog.LevelWarn, "api request failed",
			slog.String("request", req.String()),
			slog.String("outcome", result),
			slog.Duration("elapsed", elapsed),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.log(ctx, slog.LevelDebug, "api request completed",
		slog.String("request", req.String()),
		slog.Duration("elapsed", elapsed),
	)
	return nil
}

func (c *Client) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	if c.logger == nil {
		return
	}
	c.logger.LogAttrs(ctx, level, msg, attrs...)
}

// outcomeOf buckets an error into a low-cardinality metric label.
func outcomeOf(err error) string {
	var (
		httpErr    *domain.HTTPError
		netErr     *domain.NetworkError
		decodeErr  *domain.DecodeError
		invalidErr *domain.InvalidRequestError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &httpErr):
		if httpErr.Status >= 500 {
			return "server_error"
		}
		return "client_error"
	case errors.As(err, &netErr):
		return "network_error"
	case errors.As(err, &decodeErr):
		return "decode_error"
	case errors.As(err, &invalidErr):
		return "invalid_request"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

type clientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

func newClientMetrics(m metric.Meter) clientMetrics {
	if m == nil {
		return clientMetrics{}
	}
	requests, _ := m.Int64Counter("shelter.api.requests", metric.WithDescription("API requests by method and outcome"))
	duration, _ := m.Float64Histogram("shelter.api.duration",
		metric.WithDescription("API request latency"),
		metric.WithUnit("s"),
	)
	return clientMetrics{requests: requests, duration: duration}
}

func (m clientMetrics) record(ctx context.Context, method, result string, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("outcome", result),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

var _ ports.HTTPClient = (*Client)(nil)
