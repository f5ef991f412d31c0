package provider

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/skillsenselab/prepkit/provider"

// Metrics records provider call counts, durations, and failures using the
// OpenTelemetry metric API. The host service decides where readings go by
// installing its own MeterProvider; without one the instruments are no-ops.
type Metrics struct {
	calls    metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates provider-call instruments from the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	calls, err := meter.Int64Counter("provider.calls",
		metric.WithDescription("Number of provider operations attempted"))
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("provider.failures",
		metric.WithDescription("Number of provider operations that returned an error"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("provider.duration",
		metric.WithDescription("Provider operation duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Metrics{calls: calls, failures: failures, duration: duration}, nil
}

// Record registers one completed provider operation. Safe on a nil receiver
// so callers can treat metrics as optional.
func (m *Metrics) Record(ctx context.Context, family Family, providerID, op string, d time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("family", string(family)),
		attribute.String("provider", providerID),
		attribute.String("operation", op),
	)

	m.calls.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(d.Milliseconds()), attrs)
	if err != nil {
		m.failures.Add(ctx, 1, attrs)
	}
}

// WithMetrics returns a Middleware that records each call through Record.
// A nil Metrics yields a pass-through that still delegates.
func WithMetrics[I, O any](m *Metrics, family Family, providerID, op string) Middleware[I, O] {
	return func(inner Call[I, O]) Call[I, O] {
		return func(ctx context.Context, input I) (O, error) {
			start := time.Now()
			output, err := inner(ctx, input)
			m.Record(ctx, family, providerID, op, time.Since(start), err)
			return output, err
		}
	}
}
