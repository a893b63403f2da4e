package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/fpipe/logger"
	"github.com/skillsenselab/fpipe/observability"
)

// spanContext extracts a context.Context from the pipeline context when it
// carries one, falling back to the background context.
func spanContext[C any](ctx C) context.Context {
	if tc, ok := any(ctx).(context.Context); ok {
		return tc
	}
	return context.Background()
}

// WithLogging wraps a step with start/finish logging including duration.
func WithLogging[C any](name string, log *logger.Logger, step Step[C]) Step[C] {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("pipeline").WithFields(logger.Fields(logger.FieldStep, name))
	return func(ctx C) (any, error) {
		log.Debug("step started")
		start := time.Now()
		result, err := step(ctx)
		elapsed := time.Since(start)
		if err != nil {
			log.WithError(err).Error("step failed", logger.DurationFields(name, elapsed))
			return nil, err
		}
		log.Debug("step finished", logger.DurationFields(name, elapsed))
		return result, nil
	}
}

// WithTracing wraps a step in a span named after it.
func WithTracing[C any](name string, step Step[C]) Step[C] {
	return func(ctx C) (any, error) {
		sctx, span := observability.StartSpan(spanContext(ctx), name,
			trace.WithAttributes(attribute.String(observability.AttrStep, name)))
		defer span.End()

		result, err := step(ctx)
		if err != nil {
			observability.SetSpanError(sctx, err)
			observability.SetSpanAttribute(sctx, observability.AttrStatus, "error")
			return nil, err
		}
		observability.SetSpanAttribute(sctx, observability.AttrStatus, "ok")
		return result, nil
	}
}

// WithMetrics wraps a step with execution count, duration, and error
// instruments.
func WithMetrics[C any](name string, m *observability.Metrics, step Step[C]) Step[C] {
	return func(ctx C) (any, error) {
		mctx := spanContext(ctx)
		start := time.Now()
		result, err := step(ctx)
		elapsed := time.Since(start)
		if err != nil {
			m.RecordStep(mctx, name, "error", elapsed)
			m.RecordError(mctx, name)
			return nil, err
		}
		m.RecordStep(mctx, name, "ok", elapsed)
		return result, nil
	}
}
