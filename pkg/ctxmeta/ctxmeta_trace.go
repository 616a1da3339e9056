package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// TraceIDFromContext — trace_id активного спана (для логов).
func TraceIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.TraceID().String(), true
}

// SpanIDFromContext — span_id активного спана (для логов).
func SpanIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}
