package consumer

import (
	"context"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// DefaultReceiveTimeout — окно ожидания одного Receive.
const DefaultReceiveTimeout = 5 * time.Second

// Receiver — обёртка над MessageSource, приводящая результаты Receive к одному виду.
type Receiver struct {
	source  ports.MessageSource
	timeout time.Duration
}

// NewReceiver — конструктор; timeout <= 0 → DefaultReceiveTimeout.
func NewReceiver(source ports.MessageSource, timeout time.Duration) *Receiver {
	if timeout <= 0 {
		timeout = DefaultReceiveTimeout
	}
	return &Receiver{source: source, timeout: timeout}
}

// Subscribe — подписка на топики; пустой список ничего не делает.
func (r *Receiver) Subscribe(ctx context.Context, topics []string) error {
	if len(topics) == 0 {
		return nil
	}
	return r.source.Subscribe(ctx, topics)
}

// Receive — следующее сообщение.
// Таймаут, пришедший ошибкой *domain.BrokerError, и прерванное через ctx ожидание
// превращаются в сообщение со StatusTimedOut; остальные ошибки возвращаются как есть.
func (r *Receiver) Receive(ctx context.Context) (*domain.Message, error) {
	if r.source.SubscriptionCount() == 0 {
		return nil, domain.NoSubscriptions("Subscribe")
	}

	msg, err := r.source.Receive(ctx, r.timeout)
	if err != nil {
		if be, ok := domain.AsBrokerError(err); ok && be.IsTimeout() {
			return domain.NewStatusMessage(domain.StatusTimedOut, be.Reason), nil
		}
		if ctx.Err() != nil {
			return domain.NewStatusMessage(domain.StatusTimedOut, "receive interrupted"), nil
		}
		return nil, err
	}
	if msg == nil {
		return domain.NewStatusMessage(domain.StatusTimedOut, "no message"), nil
	}
	return msg, nil
}

// Commit — фиксация оффсета; ошибки не скрываются.
func (r *Receiver) Commit(ctx context.Context, msg *domain.Message) error {
	return r.source.Commit(ctx, msg)
}
