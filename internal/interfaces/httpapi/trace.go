package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("fantasy-roster/internal/interfaces/httpapi")

// startSpan opens a child span for handler entry points only. Middleware and
// response helpers share the request span, and untraced requests such as
// /healthz never get a root span from here.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func entryAttr(entryID string) attribute.KeyValue {
	return attribute.String("roster.entry_id", entryID)
}

func playerAttr(playerID string) attribute.KeyValue {
	return attribute.String("player.id", playerID)
}
