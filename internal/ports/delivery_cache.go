package ports

import "context"

// DeliveryCache — кэш уже обработанных доставок (topic/partition/offset).
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1).
type DeliveryCache interface {
	Seen(ctx context.Context, key string) bool
	Mark(ctx context.Context, key string)

	// PruneExpired — удалить просроченные записи; возвращает число удалённых.
	PruneExpired() int
}
