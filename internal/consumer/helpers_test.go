package consumer_test

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/pkg/logger"
)

// binding — тестовая привязка с точным совпадением топика.
type binding struct {
	topic  string
	calls  atomic.Int32
	handle func(ctx context.Context, msg *domain.Message) error
}

func (b *binding) TopicName() string          { return b.topic }
func (b *binding) OwnsTopic(name string) bool { return name == b.topic }
func (b *binding) Handle(ctx context.Context, msg *domain.Message) error {
	b.calls.Add(1)
	if b.handle == nil {
		return nil
	}
	return b.handle(ctx, msg)
}

func newObservedLogger() (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewFromZap(zap.New(core)), logs
}

func okMessage(topic string, offset int64) *domain.Message {
	return &domain.Message{Topic: topic, Offset: offset, Payload: []byte(`{"id":1}`), Status: domain.StatusOK}
}
