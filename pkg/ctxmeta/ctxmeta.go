// Пакет ctxmeta — нейтральный слой для работы с метаданными, которые прокидываются
// через context.Context (request_id HTTP-запроса, доставка Kafka, trace_id и т.д.).
// Идея: транспорт, диспетчер и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import (
	"context"
	"fmt"
)

type ctxKey string

const (
	// Ключи контекста (неэкспортируемые типы — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
	KeyDelivery  ctxKey = "delivery"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, KeyRequestID)
}

// DeliveryID — идентификатор доставки вида topic/partition@offset.
func DeliveryID(topic string, partition int, offset int64) string {
	return fmt.Sprintf("%s/%d@%d", topic, partition, offset)
}

// WithDelivery кладёт идентификатор доставки в контекст (если topic пуст — ничего не делает).
func WithDelivery(ctx context.Context, topic string, partition int, offset int64) context.Context {
	if ctx == nil || topic == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyDelivery, DeliveryID(topic, partition, offset))
}

// DeliveryFromContext достаёт идентификатор доставки из контекста.
func DeliveryFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, KeyDelivery)
}

func stringValue(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
