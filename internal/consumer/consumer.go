// Package consumer — цикл чтения Kafka: приём, классификация статуса, диспетчеризация и остановка.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/domain"
	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/internal/subscription"
	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
)

// State — фаза жизненного цикла консьюмера.
type State int32

const (
	StateIdle State = iota
	StateSubscribed
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubscribed:
		return "subscribed"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// ErrNotStarted — Run вызван до успешного Start.
var ErrNotStarted = errors.New("consumer is not started")

// DefaultSignals — сигналы, по которым выполняется мягкая остановка.
var DefaultSignals = []os.Signal{syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT}

// Option — функциональная опция Consumer.
type Option func(*Consumer)

// WithReceiveTimeout — окно ожидания одного Receive.
func WithReceiveTimeout(d time.Duration) Option {
	return func(c *Consumer) { c.timeout = d }
}

// WithSignals — набор сигналов для остановки; пустой набор отключает обработку сигналов.
func WithSignals(sigs ...os.Signal) Option {
	return func(c *Consumer) { c.signals = sigs }
}

// WithCleaner — хук очистки после каждой диспетчеризации.
func WithCleaner(cl ports.Cleaner) Option {
	return func(c *Consumer) { c.cleaner = cl }
}

// Consumer — однопоточный цикл consume → dispatch → commit.
type Consumer struct {
	registry *subscription.Registry
	source   ports.MessageSource
	log      ports.Logger

	timeout time.Duration
	signals []os.Signal
	cleaner ports.Cleaner

	receiver   *Receiver
	dispatcher *Dispatcher

	running atomic.Bool
	state   atomic.Int32

	mu   sync.Mutex
	wake context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

var _ ports.MessageConsumer = (*Consumer)(nil)

// New — конструктор консьюмера.
func New(registry *subscription.Registry, source ports.MessageSource, log ports.Logger, opts ...Option) *Consumer {
	c := &Consumer{
		registry: registry,
		source:   source,
		log:      log,
		timeout:  DefaultReceiveTimeout,
		signals:  DefaultSignals,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.receiver = NewReceiver(source, c.timeout)
	c.dispatcher = NewDispatcher(registry, c.receiver, c.cleaner, log)
	return c
}

// State — текущая фаза.
func (c *Consumer) State() State { return State(c.state.Load()) }

// Running — выставлен ли флаг работы.
func (c *Consumer) Running() bool { return c.running.Load() }

// Start — разрешает выбор в список топиков и подписывается на него.
// Пустой список → subscription.ErrNoTopics, подписка не выполняется.
func (c *Consumer) Start(ctx context.Context, sel domain.Selection) error {
	if err := sel.Validate(); err != nil {
		return err
	}

	topics := c.registry.ResolveTopicNames(sel)
	if len(topics) == 0 {
		return fmt.Errorf("%w: %s", subscription.ErrNoTopics, sel)
	}

	if err := c.receiver.Subscribe(ctx, topics); err != nil {
		return fmt.Errorf("subscribe to %v: %w", topics, err)
	}

	c.running.Store(true)
	c.state.Store(int32(StateSubscribed))
	c.log.Infof(ctx, "kafka consumer subscribed (%s): topics=%v", sel, topics)
	return nil
}

// Run — основной цикл. Возвращает nil после мягкой остановки,
// ошибку — при фатальном сбое приёма или коммита.
func (c *Consumer) Run(ctx context.Context) error {
	if c.State() != StateSubscribed {
		return fmt.Errorf("run: %w", ErrNotStarted)
	}

	wakeCtx, wake := context.WithCancel(ctx)
	defer wake()
	c.mu.Lock()
	c.wake = wake
	c.mu.Unlock()

	// Stop мог прийти между Start и Run.
	if c.running.Load() {
		c.state.CompareAndSwap(int32(StateSubscribed), int32(StateRunning))
	}
	defer c.state.Store(int32(StateStopped))

	stopSignals := c.handleSignals()
	defer stopSignals()
	stopOnCancel := context.AfterFunc(ctx, c.Stop)
	defer stopOnCancel()

	// обработчики и коммит не прерываются остановкой
	workCtx := context.WithoutCancel(ctx)

	for c.running.Load() {
		msg, err := c.receiver.Receive(wakeCtx)
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}

		outcome := domain.Classify(msg.Status)
		metrics.KafkaReceiveOutcomes.WithLabelValues(outcome.String()).Inc()

		switch outcome {
		case domain.OutcomeOK:
			metrics.KafkaMessagesConsumed.WithLabelValues(msg.Topic).Inc()
			if err := c.dispatcher.Dispatch(workCtx, msg); err != nil {
				return err
			}
		case domain.OutcomeEndOfPartition, domain.OutcomeTimeout:
			continue
		case domain.OutcomeAllBrokersDown:
			c.log.Noticef(workCtx, "All brokers are down, stopping consumer...")
			c.Stop()
		default:
			c.log.Errorw(workCtx, "kafka consumer: kafka error",
				"error", msg.ErrorString(),
				"code", int(msg.Status),
			)
		}
	}
	return nil
}

// Stop — сбрасывает флаг работы и будит заблокированный Receive.
// Безопасен для вызова из любой горутины и повторно.
func (c *Consumer) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
	c.log.Noticef(context.Background(), "Shutting down Kafka Consumer")

	c.mu.Lock()
	wake := c.wake
	c.mu.Unlock()
	if wake != nil {
		wake()
	}
}

// Close — закрывает источник сообщений (однократно).
func (c *Consumer) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.source.Close()
	})
	return c.closeErr
}

// handleSignals — каждый из сигналов вызывает Stop. Возвращает функцию снятия обработчиков.
func (c *Consumer) handleSignals() func() {
	if len(c.signals) == 0 {
		return func() {}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, c.signals...)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case sig := <-ch:
				c.log.Infof(context.Background(), "received signal %s", sig)
				c.Stop()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
	}
}
