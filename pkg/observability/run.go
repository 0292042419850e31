package observability

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/raynzz/eventdesk/pkg/observability/attr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Telemetry carries what Run needs to instrument one service's operations.
type Telemetry struct {
	Service string
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics OperationMetrics

	// Expected reports errors that are part of the operation's contract
	// (validation, not found). They are logged as warnings and do not count
	// as failures.
	Expected func(error) bool
}

// Run wraps a service operation with a span, operation metrics, panic recovery
// and start/finish logging.
func Run[T any](
	ctx context.Context,
	t Telemetry,
	operation string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var span trace.Span
	if t.Tracer != nil {
		ctx, span = t.Tracer.Start(ctx, t.Service+"."+operation, trace.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if t.Metrics != nil {
		t.Metrics.RecordOperationAttempt(ctx, operation, t.Service)
	}

	start := time.Now()
	defer func() {
		if t.Metrics != nil {
			t.Metrics.RecordOperationDuration(ctx, operation, t.Service, time.Since(start))
		}
	}()

	logger.InfoContext(ctx, "Operation triggered",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operation),
		attr.String("identifier", identifier),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operation, r)
			logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", operation),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if t.Metrics != nil {
				t.Metrics.RecordOperationFailure(ctx, operation, t.Service)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		if t.Expected != nil && t.Expected(err) {
			logger.WarnContext(ctx, "Operation returned failure result",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", operation),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if t.Metrics != nil {
				t.Metrics.RecordOperationSuccess(ctx, operation, t.Service)
			}
			return result, err
		}

		logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operation),
			attr.String("identifier", identifier),
			attr.Error(err),
		)
		if t.Metrics != nil {
			t.Metrics.RecordOperationFailure(ctx, operation, t.Service)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, fmt.Errorf("%s: %w", operation, err)
	}

	logger.InfoContext(ctx, "Operation completed successfully",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", operation),
		attr.String("identifier", identifier),
	)
	if t.Metrics != nil {
		t.Metrics.RecordOperationSuccess(ctx, operation, t.Service)
	}

	return result, nil
}
