package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestClampRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{-1, 0}, {0, 0}, {0.25, 0.25}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		if got := clampRatio(tt.in); got != tt.want {
			t.Fatalf("clampRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	if got := normalizeEndpoint(""); got != "localhost:4318" {
		t.Fatalf("empty endpoint must fall back to localhost:4318, got %q", got)
	}
	if got := normalizeEndpoint("jaeger:4318"); got != "jaeger:4318" {
		t.Fatalf("explicit endpoint must be kept, got %q", got)
	}
}

func TestDispatchSpan_RecordsErrorAndAttributes(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartDispatchSpan(context.Background(), "orders", 2, 17, nil)
	EndDispatchSpan(span, errors.New("boom"))

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("want 1 ended span, got %d", len(ended))
	}
	s := ended[0]
	if s.Name() != "kafka topic: orders" {
		t.Fatalf("unexpected span name %q", s.Name())
	}
	if s.Status().Code != codes.Error {
		t.Fatalf("want error status, got %v", s.Status().Code)
	}

	found := false
	for _, kv := range s.Attributes() {
		if string(kv.Key) == "messaging.kafka.offset" && kv.Value.AsInt64() == 17 {
			found = true
		}
	}
	if !found {
		t.Fatalf("offset attribute missing: %v", s.Attributes())
	}
}

func TestDispatchSpan_ContinuesProducerTrace(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	// спан продюсера из отдельного провайдера, передаётся только через заголовки
	producerCtx, producer := sdktrace.NewTracerProvider().Tracer("producer").Start(context.Background(), "send")
	headers := map[string]string{}
	propagation.TraceContext{}.Inject(producerCtx, propagation.MapCarrier(headers))
	producer.End()
	if headers["traceparent"] == "" {
		t.Fatalf("traceparent header must be injected")
	}

	_, span := StartDispatchSpan(context.Background(), "orders", 0, 1, headers)
	EndDispatchSpan(span, nil)

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("want 1 ended span, got %d", len(ended))
	}
	got := ended[0]
	want := producer.SpanContext()

	if got.Parent().TraceID() != want.TraceID() {
		t.Fatalf("parent trace id=%s, want %s", got.Parent().TraceID(), want.TraceID())
	}
	if got.Parent().SpanID() != want.SpanID() {
		t.Fatalf("parent span id=%s, want %s", got.Parent().SpanID(), want.SpanID())
	}
	if !got.Parent().IsRemote() {
		t.Fatalf("parent must be remote")
	}
	if got.SpanContext().TraceID() != want.TraceID() {
		t.Fatalf("dispatch span must continue the producer trace")
	}
	if got.Status().Code == codes.Error {
		t.Fatalf("successful dispatch must not be marked as error")
	}
}

func TestDispatchSpan_NoHeaders_NewRoot(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartDispatchSpan(context.Background(), "orders", 0, 1, nil)
	EndDispatchSpan(span, nil)

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("want 1 ended span, got %d", len(ended))
	}
	if ended[0].Parent().IsValid() {
		t.Fatalf("span without traceparent must be a root span")
	}
}
