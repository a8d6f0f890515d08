package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/DanielPopoola/shelter-fetch/internal/adapters/observability"
)

func TestInit(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inst, shutdown, err := observability.Init(context.Background(), "shelter-test", "test", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	assert.Same(t, logger, slog.Default())
	assert.NotNil(t, inst.Tracer("test"))

	counter, err := inst.Meter("test").Int64Counter("shelter.test.counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, inst.Reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	assert.Equal(t, "shelter.test.counter", rm.ScopeMetrics[0].Metrics[0].Name)
}

func TestInstruments_NilFallsBack(t *testing.T) {
	var inst *observability.Instruments
	assert.NotNil(t, inst.Tracer("x"))
	assert.NotNil(t, inst.Meter("x"))
}
