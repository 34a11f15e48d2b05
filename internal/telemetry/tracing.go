package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvbnb/knapsack"
)

const tracerName = "github.com/katalvlaran/lvbnb"

// getTracer resolves the tracer per call so a provider installed later is honoured.
func getTracer() trace.Tracer { return otel.Tracer(tracerName) }

// StartSolveSpan opens a span describing one solve.
func StartSolveSpan(ctx context.Context, runID string, items int, capacity float64, workers int) (context.Context, trace.Span) {
	return getTracer().Start(ctx, "knapsack.solve",
		trace.WithAttributes(
			attribute.String("lvbnb.run_id", runID),
			attribute.Int("lvbnb.items", items),
			attribute.Float64("lvbnb.capacity", capacity),
			attribute.Int("lvbnb.workers", workers),
		),
	)
}

// EndSolveSpan records the outcome on span and ends it.
func EndSolveSpan(span trace.Span, res knapsack.Result, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(
		attribute.String("lvbnb.status", res.Status.String()),
		attribute.Float64("lvbnb.value", res.Value),
		attribute.Int("lvbnb.selected", len(res.Selection)),
		attribute.Int("lvbnb.expanded", res.Stats.Expanded),
		attribute.Int("lvbnb.pruned", res.Stats.PrunedAtPush+res.Stats.PrunedAtPop),
		attribute.Int("lvbnb.frontier_peak", res.Stats.MaxFrontier),
	)
	if res.PossiblySuboptimal {
		span.AddEvent("budget exhausted before certification")
	}
	span.SetStatus(codes.Ok, "")
}

// SetupStdoutTracing installs a global tracer provider that pretty-prints spans to w.
// The returned function flushes and uninstalls it.
func SetupStdoutTracing(w io.Writer) (func(context.Context) error, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("telemetry: stdout exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		otel.SetTracerProvider(prev)
		return tp.Shutdown(ctx)
	}, nil
}
