package ports

import (
	"context"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
)

// Subscription — обработчик, привязанный к топику.
type Subscription interface {
	// TopicName — канонический топик привязки (идёт в список подписки).
	TopicName() string

	// OwnsTopic — обслуживает ли привязка топик с данным именем.
	OwnsTopic(name string) bool

	// Handle — обработка сообщения; ошибка означает, что оффсет коммитить нельзя.
	Handle(ctx context.Context, msg *domain.Message) error
}
