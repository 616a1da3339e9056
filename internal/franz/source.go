// Package franz — источник сообщений на twmb/franz-go.
package franz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

var _ ports.MessageSource = (*Source)(nil)

// client — используемая часть *kgo.Client.
type client interface {
	PollRecords(ctx context.Context, maxPollRecords int) kgo.Fetches
	CommitRecords(ctx context.Context, rs ...*kgo.Record) error
	AddConsumeTopics(topics ...string)
	Ping(ctx context.Context) error
	Close()
}

// Source — групповой консьюмер franz-go за портом MessageSource.
type Source struct {
	cfg SourceConfig
	log ports.Logger

	newClient func(opts ...kgo.Opt) (client, error)

	mu        sync.Mutex
	client    client
	topics    []string
	closeOnce sync.Once
}

// NewSource — клиент создаётся при первой подписке.
func NewSource(cfg *SourceConfig, log ports.Logger) *Source {
	return &Source{
		cfg: *cfg,
		log: log,
		newClient: func(opts ...kgo.Opt) (client, error) {
			return kgo.NewClient(opts...)
		},
	}
}

// Subscribe — добавляет топики к подписке группы. Пустой список ничего не делает.
func (s *Source) Subscribe(ctx context.Context, topics []string) error {
	if len(topics) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var added []string
	for _, t := range topics {
		if !slices.Contains(s.topics, t) && !slices.Contains(added, t) {
			added = append(added, t)
		}
	}
	if len(added) == 0 {
		return nil
	}

	if s.client == nil {
		cl, err := s.newClient(s.cfg.clientOpts(added, s.log)...)
		if err != nil {
			return fmt.Errorf("franz client: %w", err)
		}
		s.client = cl
	} else {
		s.client.AddConsumeTopics(added...)
	}

	s.topics = append(s.topics, added...)
	s.log.Infof(ctx, "franz source subscribed group_id=%s topics=%v brokers=%v", s.cfg.GroupID, s.topics, s.cfg.Brokers)
	return nil
}

// SubscriptionCount — число топиков в подписке.
func (s *Source) SubscriptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.topics)
}

// Receive — одна запись за вызов; остальное остаётся в буфере клиента.
func (s *Source) Receive(ctx context.Context, timeout time.Duration) (*domain.Message, error) {
	cl := s.current()
	if cl == nil {
		return nil, domain.NoSubscriptions("Subscribe")
	}

	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fetches := cl.PollRecords(pollCtx, 1)
	if fetches.IsClientClosed() {
		return nil, domain.NewBrokerError(domain.StatusUnknown, "client closed", kgo.ErrClientClosed)
	}

	if recs := fetches.Records(); len(recs) > 0 {
		for _, fe := range fetches.Errors() {
			s.log.Warnf(ctx, "franz fetch error topic=%s partition=%d: %v", fe.Topic, fe.Partition, fe.Err)
		}
		return toDomain(recs[0]), nil
	}

	if errs := fetches.Errors(); len(errs) > 0 {
		return s.pollFailure(ctx, cl, timeout, errs[0].Err)
	}
	return nil, domain.NewBrokerError(domain.StatusTimedOut, fmt.Sprintf("no records within %s", timeout), nil)
}

func (s *Source) pollFailure(ctx context.Context, cl client, timeout time.Duration, err error) (*domain.Message, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var ke *kerr.Error
	switch {
	case errors.As(err, &ke):
		return domain.NewStatusMessage(domain.Status(int(ke.Code)), ke.Error()), nil
	case errors.Is(err, context.DeadlineExceeded):
		if s.cfg.CheckOnTimeout {
			pingCtx, cancel := context.WithTimeout(ctx, s.cfg.reachTimeout())
			perr := cl.Ping(pingCtx)
			cancel()
			if perr != nil {
				// проверку прервала остановка, а не недоступность брокеров
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return domain.NewStatusMessage(domain.StatusAllBrokersDown, perr.Error()), nil
			}
		}
		return nil, domain.NewBrokerError(domain.StatusTimedOut, fmt.Sprintf("no records within %s", timeout), err)
	case errors.Is(err, kgo.ErrClientClosed):
		return nil, domain.NewBrokerError(domain.StatusUnknown, "client closed", err)
	default:
		// прочие ошибки клиент переживает сам; отдаём их как статус
		return domain.NewStatusMessage(domain.StatusUnknown, err.Error()), nil
	}
}

// Commit — синхронный коммит записи.
func (s *Source) Commit(ctx context.Context, msg *domain.Message) error {
	cl := s.current()
	if cl == nil {
		return domain.NoSubscriptions("Subscribe")
	}

	rec, ok := msg.Raw.(*kgo.Record)
	if !ok {
		rec = &kgo.Record{Topic: msg.Topic, Partition: int32(msg.Partition), Offset: msg.Offset}
	}

	if s.cfg.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CommitTimeout)
		defer cancel()
	}

	if err := cl.CommitRecords(ctx, rec); err != nil {
		return fmt.Errorf("commit %s[%d]@%d: %w", rec.Topic, rec.Partition, rec.Offset, err)
	}
	return nil
}

// Close — закрывает клиент (однократно).
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		if cl := s.current(); cl != nil {
			cl.Close()
		}
	})
	return nil
}

func (s *Source) current() client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

func toDomain(rec *kgo.Record) *domain.Message {
	var headers map[string]string
	if len(rec.Headers) > 0 {
		headers = make(map[string]string, len(rec.Headers))
		for _, h := range rec.Headers {
			headers[h.Key] = string(h.Value)
		}
	}

	return &domain.Message{
		Topic:     rec.Topic,
		Partition: int(rec.Partition),
		Offset:    rec.Offset,
		Key:       rec.Key,
		Payload:   rec.Value,
		Headers:   headers,
		Time:      rec.Timestamp,
		Status:    domain.StatusOK,
		Raw:       rec,
	}
}
