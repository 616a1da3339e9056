package ports

import (
	"context"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
)

// ArchiveRepository — хранилище архивированных сообщений.
type ArchiveRepository interface {
	// Save — идемпотентно сохраняет сообщение; повторная доставка не создаёт дубль.
	// inserted == false, если запись с тем же (topic, partition, offset) уже была.
	Save(ctx context.Context, msg *domain.Message) (inserted bool, err error)
	CountByTopic(ctx context.Context, topic string) (int64, error)
}
