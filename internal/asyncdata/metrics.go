package asyncdata

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/DanielPopoola/shelter-fetch/internal/asyncdata"

type cacheMetrics struct {
	lookups metric.Int64Counter
	settled metric.Int64Counter
}

func newCacheMetrics(m metric.Meter) cacheMetrics {
	if m == nil {
		m = metricnoop.NewMeterProvider().Meter(meterName)
	}
	lookups, err := m.Int64Counter("asyncdata.lookups",
		metric.WithDescription("Cache lookups by result: hit, miss, join or refresh"),
	)
	if err != nil {
		lookups, _ = metricnoop.NewMeterProvider().Meter(meterName).Int64Counter("asyncdata.lookups")
	}
	settled, err := m.Int64Counter("asyncdata.loads",
		metric.WithDescription("Loads that settled, by final state"),
	)
	if err != nil {
		settled, _ = metricnoop.NewMeterProvider().Meter(meterName).Int64Counter("asyncdata.loads")
	}
	return cacheMetrics{lookups: lookups, settled: settled}
}

func (m cacheMetrics) recordLookup(ctx context.Context, result string) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m cacheMetrics) recordSettled(ctx context.Context, state State) {
	m.settled.Add(ctx, 1, metric.WithAttributes(attribute.String("state", state.String())))
}
