package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
)

// MessageSource — клиент брокера, уже настроенный на кластер и consumer group.
type MessageSource interface {
	// Subscribe — подписка на список топиков.
	Subscribe(ctx context.Context, topics []string) error

	// Receive — блокирующее получение следующего сообщения не дольше timeout.
	// Истечение окна реализация может вернуть либо сообщением со StatusTimedOut,
	// либо ошибкой *domain.BrokerError с IsTimeout() == true.
	Receive(ctx context.Context, timeout time.Duration) (*domain.Message, error)

	// Commit — фиксирует оффсет обработанного сообщения.
	Commit(ctx context.Context, msg *domain.Message) error

	// SubscriptionCount — число топиков в текущей подписке.
	SubscriptionCount() int

	Close() error
}
