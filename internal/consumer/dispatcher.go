package consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/internal/subscription"
	"github.com/Gunvolt24/kafka_consumer/pkg/ctxmeta"
	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
	"github.com/Gunvolt24/kafka_consumer/pkg/telemetry"
)

// committer — фиксация оффсета после успешной обработки.
type committer interface {
	Commit(ctx context.Context, msg *domain.Message) error
}

// Dispatcher — передаёт сообщение первой подходящей привязке и коммитит при успехе.
type Dispatcher struct {
	registry  *subscription.Registry
	committer committer
	cleaner   ports.Cleaner
	log       ports.Logger
}

// NewDispatcher — cleaner может быть nil.
func NewDispatcher(registry *subscription.Registry, c committer, cleaner ports.Cleaner, log ports.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, committer: c, cleaner: cleaner, log: log}
}

// Dispatch — обработка одного сообщения:
// 1) первая привязка в порядке регистрации, обслуживающая топик;
// 2) успех обработчика → Commit (ошибка коммита возвращается, она фатальна);
// 3) ошибка обработчика → лог с полным контекстом, без коммита и без повтора;
// 4) cleanup вызывается ровно один раз на любом пути, после коммита.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *domain.Message) error {
	defer d.cleanUp()

	ctx = ctxmeta.WithDelivery(ctx, msg.Topic, msg.Partition, msg.Offset)

	sub, ok := d.registry.Match(msg.Topic)
	if !ok {
		metrics.KafkaMessagesUnrouted.WithLabelValues(msg.Topic).Inc()
		d.log.Debugf(ctx, "no subscription for topic=%s, message skipped", msg.Topic)
		return nil
	}

	spanCtx, span := telemetry.StartDispatchSpan(ctx, msg.Topic, msg.Partition, msg.Offset, msg.Headers)
	start := time.Now()
	handleErr := invoke(spanCtx, sub, msg)
	metrics.HandlerDuration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())
	telemetry.EndDispatchSpan(span, handleErr)

	if handleErr != nil {
		metrics.KafkaMessagesFailed.WithLabelValues(msg.Topic).Inc()
		d.log.Errorw(spanCtx, "kafka consumer: exception thrown in handler",
			"exception", handleErr,
			"payload", string(msg.Payload),
			"topic", msg.Topic,
			"message", msg,
		)
		return nil
	}

	if err := d.committer.Commit(ctx, msg); err != nil {
		return fmt.Errorf("commit %s: %w", ctxmeta.DeliveryID(msg.Topic, msg.Partition, msg.Offset), err)
	}
	metrics.KafkaMessagesProcessed.WithLabelValues(msg.Topic).Inc()
	return nil
}

func (d *Dispatcher) cleanUp() {
	if d.cleaner != nil {
		d.cleaner.CleanUp()
	}
}

// invoke — вызов обработчика; паника обработчика считается его ошибкой.
func invoke(ctx context.Context, sub ports.Subscription, msg *domain.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return sub.Handle(ctx, msg)
}
