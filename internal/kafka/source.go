// Package kafka — источник сообщений на segmentio/kafka-go.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// Проверка, что Source удовлетворяет порту источника сообщений.
var _ ports.MessageSource = (*Source)(nil)

// reader — минимальный контракт над kafka.Reader,
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Source — групповой читатель kafka-go за портом MessageSource.
// Reader создаётся при первой подписке и пересоздаётся при расширении списка топиков.
type Source struct {
	cfg    SourceConfig
	log    ports.Logger
	dialer *kafka.Dialer

	newReader func(rc kafka.ReaderConfig) (reader, error)
	reach     func(ctx context.Context) error

	mu        sync.Mutex
	reader    reader
	topics    []string
	closeOnce sync.Once
}

// NewSource — конструктор; подключение к брокерам откладывается до Subscribe.
func NewSource(cfg *SourceConfig, log ports.Logger) (*Source, error) {
	d, err := cfg.dialer()
	if err != nil {
		return nil, err
	}

	s := &Source{cfg: *cfg, log: log, dialer: d}
	s.newReader = func(rc kafka.ReaderConfig) (reader, error) {
		if err := rc.Validate(); err != nil {
			return nil, err
		}
		return kafka.NewReader(rc), nil
	}
	if cfg.CheckOnTimeout {
		dial := func(ctx context.Context, addr string) (io.Closer, error) { return d.DialContext(ctx, "tcp", addr) }
		s.reach = func(ctx context.Context) error {
			return reachBrokers(ctx, dial, s.cfg.Brokers, s.cfg.reachTimeout())
		}
	}
	return s, nil
}

// Subscribe — добавляет топики к подписке. Пустой список ничего не делает.
func (s *Source) Subscribe(ctx context.Context, topics []string) error {
	if len(topics) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := slices.Clone(s.topics)
	for _, t := range topics {
		if !slices.Contains(merged, t) {
			merged = append(merged, t)
		}
	}
	if s.reader != nil && len(merged) == len(s.topics) {
		return nil
	}

	r, err := s.newReader(s.cfg.readerConfig(merged, s.dialer, s.log))
	if err != nil {
		return fmt.Errorf("kafka reader: %w", err)
	}
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			s.log.Warnf(ctx, "close previous reader: %v", err)
		}
	}

	s.reader = r
	s.topics = merged
	s.log.Infof(ctx, "kafka source subscribed group_id=%s topics=%v brokers=%v", s.cfg.GroupID, merged, s.cfg.Brokers)
	return nil
}

// SubscriptionCount — число топиков в текущей подписке.
func (s *Source) SubscriptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.topics)
}

// Receive — ждёт следующее сообщение не дольше timeout.
func (s *Source) Receive(ctx context.Context, timeout time.Duration) (*domain.Message, error) {
	r := s.current()
	if r == nil {
		return nil, domain.NoSubscriptions("Subscribe")
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	km, err := r.FetchMessage(fetchCtx)
	if err != nil {
		return s.fetchFailure(ctx, timeout, err)
	}
	return toDomain(km), nil
}

// fetchFailure — раскладывает ошибку FetchMessage по статусам.
func (s *Source) fetchFailure(ctx context.Context, timeout time.Duration, err error) (*domain.Message, error) {
	// остановка снаружи: отдаём как есть, обёртка сама решит
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var kerr kafka.Error
	switch {
	case errors.As(err, &kerr):
		return domain.NewStatusMessage(domain.Status(int(kerr)), kerr.Error()), nil
	case errors.Is(err, context.DeadlineExceeded):
		if s.reach != nil {
			if perr := s.reach(ctx); perr != nil {
				// проверку прервала остановка, а не недоступность брокеров
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return domain.NewStatusMessage(domain.StatusAllBrokersDown, perr.Error()), nil
			}
		}
		return nil, domain.NewBrokerError(domain.StatusTimedOut, fmt.Sprintf("no message within %s", timeout), err)
	default:
		return nil, domain.NewBrokerError(domain.StatusUnknown, err.Error(), err)
	}
}

// Commit — синхронный коммит оффсета сообщения.
func (s *Source) Commit(ctx context.Context, msg *domain.Message) error {
	r := s.current()
	if r == nil {
		return domain.NoSubscriptions("Subscribe")
	}

	km, ok := msg.Raw.(kafka.Message)
	if !ok {
		km = kafka.Message{Topic: msg.Topic, Partition: msg.Partition, Offset: msg.Offset}
	}

	if s.cfg.CommitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CommitTimeout)
		defer cancel()
	}

	if err := r.CommitMessages(ctx, km); err != nil {
		return fmt.Errorf("commit %s[%d]@%d: %w", km.Topic, km.Partition, km.Offset, err)
	}
	return nil
}

// Close — закрывает reader. Вызывается при остановке приложения.
func (s *Source) Close() (retErr error) {
	s.closeOnce.Do(func() {
		if r := s.current(); r != nil {
			retErr = r.Close()
		}
	})
	return retErr
}

func (s *Source) current() reader {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reader
}

func toDomain(km kafka.Message) *domain.Message {
	var headers map[string]string
	if len(km.Headers) > 0 {
		headers = make(map[string]string, len(km.Headers))
		for _, h := range km.Headers {
			headers[h.Key] = string(h.Value)
		}
	}

	return &domain.Message{
		Topic:     km.Topic,
		Partition: km.Partition,
		Offset:    km.Offset,
		Key:       km.Key,
		Payload:   km.Value,
		Headers:   headers,
		Time:      km.Time,
		Status:    domain.StatusOK,
		Raw:       km,
	}
}

// errReachable — брокер ответил, остальные проверки можно прервать.
var errReachable = errors.New("broker reachable")

// reachBrokers — nil, если доступен хотя бы один брокер.
// Брокеры опрашиваются параллельно, каждый не дольше timeout.
func reachBrokers(
	ctx context.Context,
	dial func(ctx context.Context, addr string) (io.Closer, error),
	brokers []string,
	timeout time.Duration,
) error {
	if len(brokers) == 0 {
		return errors.New("no brokers configured")
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, b := range brokers {
		g.Go(func() error {
			dialCtx, cancel := context.WithTimeout(gctx, timeout)
			defer cancel()

			conn, err := dial(dialCtx, b)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", b, err))
				mu.Unlock()
				return nil
			}
			_ = conn.Close()
			return errReachable
		})
	}

	if err := g.Wait(); errors.Is(err, errReachable) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%d/%d brokers are down: %w", len(brokers), len(brokers), errors.Join(errs...))
}
