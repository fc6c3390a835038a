// Package telemetry reports assertion failures to OpenTelemetry: a span
// event on the span found in the container's context and a failure counter.
//
// Nothing is emitted until InitMetrics is called for the counter, and spans
// are only annotated when recording.
package telemetry
