package ports

import (
	"context"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
)

type MessageConsumer interface {
	Start(ctx context.Context, sel domain.Selection) error
	Run(ctx context.Context) error
	Stop()
	Close() error
}
