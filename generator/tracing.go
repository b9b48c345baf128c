// SPDX-License-Identifier: MIT

package generator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "geogen.generator"

// tracer wraps the global OpenTelemetry tracer; disabled tracers hand out
// noop spans.
type tracer struct {
	tracer  trace.Tracer
	enabled bool
}

func newTracer(enabled bool) *tracer {
	return &tracer{tracer: otel.Tracer(tracerName), enabled: enabled}
}

// startRun starts the span covering a whole run.
func (t *tracer) startRun(ctx context.Context, runID, layout string, constructions, iterations int) (context.Context, trace.Span) {
	if !t.enabled {
		return ctx, noop.Span{}
	}
	return t.tracer.Start(ctx, "geogen.run",
		trace.WithAttributes(
			attribute.String("geogen.run_id", runID),
			attribute.String("geogen.layout", layout),
			attribute.Int("geogen.constructions", constructions),
			attribute.Int("geogen.iterations", iterations),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// startLayer starts the span of one layer expansion.
func (t *tracer) startLayer(ctx context.Context, iteration, configurations int) (context.Context, trace.Span) {
	if !t.enabled {
		return ctx, noop.Span{}
	}
	return t.tracer.Start(ctx, "geogen.layer",
		trace.WithAttributes(
			attribute.Int("geogen.iteration", iteration),
			attribute.Int("geogen.layer.configurations", configurations),
		),
	)
}

// end closes span, recording err when set.
func end(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attrs...)
	span.End()
}
