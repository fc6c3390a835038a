//go:build unit

package telemetry

import (
	"context"
	"testing"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()

	return recorder, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
}

func TestRecordFailureAddsSpanEvent(t *testing.T) {
	t.Parallel()

	recorder, provider := newRecorder()
	ctx, span := provider.Tracer("test").Start(context.Background(), "soft")

	RecordFailure(ctx, Event{
		Mode:        "soft",
		Container:   "c-1",
		Method:      "IsEqualTo",
		Message:     "expected: 3\n but was: 2",
		Disposition: Collected,
	})
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, SpanEventName, events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String("assertion.method", "IsEqualTo"))
	assert.Contains(t, events[0].Attributes, attribute.String("assertion.container", "c-1"))
	assert.Contains(t, events[0].Attributes, attribute.String("assertion.disposition", "collected"))
}

func TestRecordFailureWithoutSpanIsNoop(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		RecordFailure(context.Background(), Event{Method: "IsTrue"})
		RecordFailure(nil, Event{Method: "IsTrue"}) //nolint:staticcheck
		RecordFinalization(context.Background(), "c", failure.New("x"))
	})
}

func TestRecordFinalizationSetsErrorStatus(t *testing.T) {
	t.Parallel()

	recorder, provider := newRecorder()
	ctx, span := provider.Tracer("test").Start(context.Background(), "soft")

	RecordFinalization(ctx, "c-9", failure.Collected([]error{failure.New("x")}))
	RecordFinalization(ctx, "c-9", nil)
	span.End()

	ended := recorder.Ended()[0]
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "assertions failed in c-9", ended.Status().Description)
	require.Len(t, ended.Events(), 1, "RecordError adds an exception event")
}

// Uses the metrics singleton; not parallel.
func TestMetricsCounter(t *testing.T) {
	ResetMetrics()
	t.Cleanup(ResetMetrics)

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")

	require.NoError(t, InitMetrics(meter))
	require.NoError(t, InitMetrics(nil))

	ctx := context.Background()
	RecordFailure(ctx, Event{Mode: "soft", Container: "c-1", Method: "IsTrue", Disposition: Collected})
	RecordFailure(ctx, Event{Mode: "soft", Container: "c-2", Method: "IsTrue", Disposition: Collected})

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	m := rm.ScopeMetrics[0].Metrics[0]
	assert.Equal(t, MetricFailedTotal, m.Name)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1, "container ids do not split the series")
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)

	_, labelled := sum.DataPoints[0].Attributes.Value("container")
	assert.False(t, labelled)

	mode, ok := sum.DataPoints[0].Attributes.Value("mode")
	require.True(t, ok)
	assert.Equal(t, "soft", mode.AsString())
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics

	assert.NotPanics(t, func() { m.RecordFailure(context.Background(), Event{}) })
}
