package telemetry

import (
	"context"
	"fmt"
	"sync"

	"github.com/LerianStudio/lib-fluent/fluent/failure"
	"github.com/LerianStudio/lib-fluent/fluent/presentation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// SpanEventName is the span event added for every failure.
	SpanEventName = "assertion.failed"
	// MetricFailedTotal counts failures by mode, method and disposition.
	// Container ids go on the span event only.
	MetricFailedTotal = "assertion_failed_total"
)

// Disposition says what the engine did with a failure.
type Disposition string

const (
	Collected Disposition = "collected"
	Raised    Disposition = "raised"
	Skipped   Disposition = "skipped"
)

// Event describes one failure.
type Event struct {
	Mode        string
	Container   string
	Method      string
	Message     string
	Disposition Disposition
}

// Metrics owns the failure counter.
type Metrics struct {
	counter metric.Int64Counter
}

var (
	metricsInstance *Metrics
	metricsMu       sync.RWMutex
)

// InitMetrics creates the failure counter on meter. Later calls are no-ops
// until ResetMetrics.
func InitMetrics(meter metric.Meter) error {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	if meter == nil || metricsInstance != nil {
		return nil
	}

	counter, err := meter.Int64Counter(
		MetricFailedTotal,
		metric.WithUnit("1"),
		metric.WithDescription("Total number of failed assertion checks"),
	)
	if err != nil {
		return fmt.Errorf("create %s counter: %w", MetricFailedTotal, err)
	}

	metricsInstance = &Metrics{counter: counter}

	return nil
}

// GetMetrics returns the initialised metrics, or nil.
func GetMetrics() *Metrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()

	return metricsInstance
}

// ResetMetrics drops the metrics singleton.
func ResetMetrics() {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	metricsInstance = nil
}

// RecordFailure increments the counter for ev. A nil receiver is a no-op.
func (m *Metrics) RecordFailure(ctx context.Context, ev Event) {
	if m == nil || m.counter == nil {
		return
	}

	m.counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("mode", ev.Mode),
		attribute.String("method", ev.Method),
		attribute.String("disposition", string(ev.Disposition)),
	))
}

// RecordFailure counts ev and adds an assertion.failed event to the span in ctx.
func RecordFailure(ctx context.Context, ev Event) {
	if ctx == nil {
		ctx = context.Background()
	}

	GetMetrics().RecordFailure(ctx, ev)

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("assertion.mode", ev.Mode),
		attribute.String("assertion.method", ev.Method),
		attribute.String("assertion.message", presentation.Truncate(ev.Message)),
		attribute.String("assertion.disposition", string(ev.Disposition)),
	}

	if ev.Container != "" {
		attrs = append(attrs, attribute.String("assertion.container", ev.Container))
	}

	span.AddEvent(SpanEventName, trace.WithAttributes(attrs...))
}

// RecordFinalization marks the span in ctx as failed when err is not nil.
func RecordFinalization(ctx context.Context, container string, err error) {
	if ctx == nil || err == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(fmt.Errorf("%w: %s", failure.ErrAssertionFailed, presentation.Truncate(err.Error())))
	span.SetStatus(codes.Error, statusMessage(container))
}

func statusMessage(container string) string {
	if container == "" {
		return "assertions failed"
	}

	return "assertions failed in " + container
}
