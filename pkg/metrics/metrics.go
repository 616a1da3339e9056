package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages received from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages handled and committed",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages whose handler failed (consumed without commit)",
		},
		[]string{"topic"},
	)
	KafkaMessagesUnrouted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_unrouted_total",
			Help: "Number of messages with no matching subscription",
		},
		[]string{"topic"},
	)
	KafkaReceiveOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_receive_outcomes_total",
			Help: "Classified results of receive calls",
		},
		[]string{"outcome"}, // ok|end_of_partition|timeout|all_brokers_down|other
	)
	HandlerDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kafka_handler_duration_seconds",
			Help:    "Time spent inside subscription handlers",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesUnrouted,
			KafkaReceiveOutcomes, HandlerDuration, CacheOps, CacheSize,
		)
	})
}
