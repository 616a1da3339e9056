package franz

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/scram"

	"github.com/Gunvolt24/kafka_consumer/internal/ports"
)

// SourceConfig — параметры клиента franz-go.
type SourceConfig struct {
	Brokers     []string
	GroupID     string
	ClientID    string
	StartOffset string // first|last

	SASLUsername string
	SASLPassword string
	TLS          *tls.Config

	MaxWait        time.Duration
	CommitTimeout  time.Duration
	CheckOnTimeout bool
	ReachTimeout   time.Duration // ограничение на Ping; 0 → DefaultReachTimeout
}

// DefaultReachTimeout — ожидание ответа брокеров при проверке доступности.
const DefaultReachTimeout = 2 * time.Second

func (c *SourceConfig) reachTimeout() time.Duration {
	if c.ReachTimeout > 0 {
		return c.ReachTimeout
	}
	return DefaultReachTimeout
}

// clientOpts — групповой консьюмер без автокоммита на указанные топики.
func (c *SourceConfig) clientOpts(topics []string, log ports.Logger) []kgo.Opt {
	opts := []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),
		kgo.ConsumerGroup(c.GroupID),
		kgo.ConsumeTopics(topics...),
		kgo.DisableAutoCommit(),
		kgo.ConsumeResetOffset(resetOffset(c.StartOffset)),
	}
	if c.ClientID != "" {
		opts = append(opts, kgo.ClientID(c.ClientID))
	}
	if c.MaxWait > 0 {
		opts = append(opts, kgo.FetchMaxWait(c.MaxWait))
	}
	if c.TLS != nil {
		opts = append(opts, kgo.DialTLSConfig(c.TLS))
	}
	if c.SASLUsername != "" {
		opts = append(opts, kgo.SASL(scram.Auth{User: c.SASLUsername, Pass: c.SASLPassword}.AsSha256Mechanism()))
	}
	if log != nil {
		opts = append(opts, kgo.WithLogger(logBridge{log: log}))
	}
	return opts
}

func resetOffset(s string) kgo.Offset {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last", "latest", "largest":
		return kgo.NewOffset().AtEnd()
	default:
		return kgo.NewOffset().AtStart()
	}
}
