// Package handler — привязки топиков к обработчикам сообщений.
package handler

import (
	"context"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

var (
	_ ports.Subscription = (*ArchiveSubscription)(nil)
	_ ports.Subscription = (*LogSubscription)(nil)
	_ ports.Subscription = (*FuncSubscription)(nil)
)

// archiver — зависимость на прикладной сервис архивации.
type archiver interface {
	ArchiveMessage(ctx context.Context, msg *domain.Message) error
}

// ArchiveSubscription — сохраняет сообщения топика в архив.
type ArchiveSubscription struct {
	topic string
	svc   archiver
}

func NewArchiveSubscription(topic string, svc archiver) *ArchiveSubscription {
	return &ArchiveSubscription{topic: topic, svc: svc}
}

func (s *ArchiveSubscription) TopicName() string          { return s.topic }
func (s *ArchiveSubscription) OwnsTopic(name string) bool { return name == s.topic }

func (s *ArchiveSubscription) Handle(ctx context.Context, msg *domain.Message) error {
	return s.svc.ArchiveMessage(ctx, msg)
}

// LogSubscription — только пишет доставку в лог.
type LogSubscription struct {
	topic string
	log   ports.Logger
}

func NewLogSubscription(topic string, log ports.Logger) *LogSubscription {
	return &LogSubscription{topic: topic, log: log}
}

func (s *LogSubscription) TopicName() string          { return s.topic }
func (s *LogSubscription) OwnsTopic(name string) bool { return name == s.topic }

func (s *LogSubscription) Handle(ctx context.Context, msg *domain.Message) error {
	s.log.Infof(ctx, "message topic=%s partition=%d offset=%d key=%q bytes=%d",
		msg.Topic, msg.Partition, msg.Offset, msg.Key, len(msg.Payload))
	return nil
}

// FuncSubscription — привязка на замыканиях.
// Owns == nil → обслуживается только топик Topic.
type FuncSubscription struct {
	Topic string
	Owns  func(name string) bool
	Fn    func(ctx context.Context, msg *domain.Message) error
}

func (s *FuncSubscription) TopicName() string { return s.Topic }

func (s *FuncSubscription) OwnsTopic(name string) bool {
	if s.Owns != nil {
		return s.Owns(name)
	}
	return name == s.Topic
}

func (s *FuncSubscription) Handle(ctx context.Context, msg *domain.Message) error {
	if s.Fn == nil {
		return nil
	}
	return s.Fn(ctx, msg)
}
