package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// Проверка, что ArchiveRepository удовлетворяет интерфейсу порта.
var _ ports.ArchiveRepository = (*ArchiveRepository)(nil)

// ArchiveRepository — архив доставленных сообщений в Postgres (pgxpool).
type ArchiveRepository struct {
	pool *pgxpool.Pool
}

// NewArchiveRepository - конструктор ArchiveRepository.
func NewArchiveRepository(pool *pgxpool.Pool) *ArchiveRepository {
	return &ArchiveRepository{pool: pool}
}

// Save — идемпотентная вставка по (topic, partition, offset).
// inserted=false означает, что такая доставка уже была в архиве.
func (r *ArchiveRepository) Save(ctx context.Context, msg *domain.Message) (bool, error) {
	if msg == nil || msg.Topic == "" {
		return false, errors.New("message is empty or topic is required")
	}

	var producedAt any
	if !msg.Time.IsZero() {
		producedAt = msg.Time
	}
	payload := msg.Payload
	if payload == nil {
		payload = []byte{}
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO archived_messages (topic, partition, "offset", key, payload, headers, produced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (topic, partition, "offset") DO NOTHING
	`, msg.Topic, msg.Partition, msg.Offset, msg.Key, payload, msg.Headers, producedAt)
	if err != nil {
		return false, fmt.Errorf("insert archived message: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountByTopic — число архивных записей по топику.
func (r *ArchiveRepository) CountByTopic(ctx context.Context, topic string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM archived_messages WHERE topic = $1`, topic,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("count archived messages: %w", err)
	}
	return n, nil
}
