package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Gunvolt24/kafka_consumer/dispatcher"

// StartDispatchSpan — спан на обработку одного сообщения (аналог транзакции воркера).
// Если в заголовках есть traceparent — спан становится дочерним по отношению к продюсеру.
func StartDispatchSpan(
	ctx context.Context,
	topic string,
	partition int,
	offset int64,
	headers map[string]string,
) (context.Context, trace.Span) {
	if len(headers) > 0 {
		ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(headers))
	}

	return otel.Tracer(tracerName).Start(ctx, fmt.Sprintf("kafka topic: %s", topic),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", topic),
			attribute.Int("messaging.kafka.partition", partition),
			attribute.Int64("messaging.kafka.offset", offset),
		),
	)
}

// EndDispatchSpan — закрывает спан, отмечая ошибку обработчика.
func EndDispatchSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
