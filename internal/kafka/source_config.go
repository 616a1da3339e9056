package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// SourceConfig — параметры подключения читателя kafka-go.
type SourceConfig struct {
	Brokers     []string
	GroupID     string
	ClientID    string
	StartOffset string // first|last

	SASLUsername string
	SASLPassword string
	TLS          *tls.Config

	MaxWait        time.Duration
	DialTimeout    time.Duration
	CommitTimeout  time.Duration
	CheckOnTimeout bool
	ReachTimeout   time.Duration // на один брокер; 0 → DefaultReachTimeout
}

// DefaultReachTimeout — ожидание ответа одного брокера при проверке доступности.
const DefaultReachTimeout = 2 * time.Second

func (c *SourceConfig) reachTimeout() time.Duration {
	if c.ReachTimeout > 0 {
		return c.ReachTimeout
	}
	return DefaultReachTimeout
}

// dialer — TCP/TLS + SCRAM-SHA-256, если задан пользователь.
func (c *SourceConfig) dialer() (*kafka.Dialer, error) {
	d := &kafka.Dialer{
		ClientID:  c.ClientID,
		Timeout:   c.DialTimeout,
		DualStack: true,
		TLS:       c.TLS,
	}
	if d.Timeout <= 0 {
		d.Timeout = 10 * time.Second
	}

	if c.SASLUsername != "" {
		mech, err := scram.Mechanism(scram.SHA256, c.SASLUsername, c.SASLPassword)
		if err != nil {
			return nil, fmt.Errorf("scram mechanism: %w", err)
		}
		d.SASLMechanism = mech
	}
	return d, nil
}

// readerConfig — групповой читатель на несколько топиков с ручным коммитом.
func (c *SourceConfig) readerConfig(topics []string, d *kafka.Dialer, log ports.Logger) kafka.ReaderConfig {
	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		GroupTopics:    topics,
		Dialer:         d,
		MaxWait:        c.MaxWait,
		CommitInterval: 0,
		StartOffset:    startOffset(c.StartOffset),
	}

	if log != nil {
		rc.Logger = kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Debugf(context.Background(), "kafka-go: "+msg, args...)
		})
		rc.ErrorLogger = kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Warnf(context.Background(), "kafka-go: "+msg, args...)
		})
	}
	return rc
}

// startOffset — откуда читать при отсутствии закоммиченного оффсета группы.
func startOffset(s string) int64 {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last", "latest", "largest":
		return kafka.LastOffset
	default:
		return kafka.FirstOffset
	}
}
