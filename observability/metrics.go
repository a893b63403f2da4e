package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultMeterName = "github.com/skillsenselab/fpipe/observability"

// Metrics records pipeline step execution metrics.
type Metrics struct {
	stepCount    metric.Int64Counter
	stepErrors   metric.Int64Counter
	stepDuration metric.Float64Histogram
}

// NewMetrics creates instruments on the globally registered meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(defaultMeterName)

	stepCount, err := meter.Int64Counter("fpipe.step.count",
		metric.WithDescription("Number of pipeline step executions"))
	if err != nil {
		return nil, fmt.Errorf("creating step counter: %w", err)
	}

	stepErrors, err := meter.Int64Counter("fpipe.step.errors",
		metric.WithDescription("Number of failed pipeline step executions"))
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	stepDuration, err := meter.Float64Histogram("fpipe.step.duration",
		metric.WithDescription("Pipeline step execution duration"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return &Metrics{
		stepCount:    stepCount,
		stepErrors:   stepErrors,
		stepDuration: stepDuration,
	}, nil
}

// RecordStep records one step execution with its status and duration.
func (m *Metrics) RecordStep(ctx context.Context, step, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	)
	m.stepCount.Add(ctx, 1, attrs)
	m.stepDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
}

// RecordError records a failed step execution.
func (m *Metrics) RecordError(ctx context.Context, step string) {
	m.stepErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("step", step)))
}
