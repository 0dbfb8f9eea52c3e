package mcpapi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("fpl-mcp/internal/interfaces/mcpapi")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		// stdio calls carry no parent span; helpers must not start root spans.
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}
