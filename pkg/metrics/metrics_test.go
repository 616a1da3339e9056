package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.MustRegister()
		metrics.MustRegister()
	})
}

func TestTopicCounters(t *testing.T) {
	metrics.MustRegister()

	counters := map[string]*prometheus.CounterVec{
		"consumed":  metrics.KafkaMessagesConsumed,
		"processed": metrics.KafkaMessagesProcessed,
		"failed":    metrics.KafkaMessagesFailed,
		"unrouted":  metrics.KafkaMessagesUnrouted,
	}

	for name, vec := range counters {
		t.Run(name, func(t *testing.T) {
			c := vec.WithLabelValues("metrics-test")
			before := testutil.ToFloat64(c)
			c.Inc()
			assert.InDelta(t, before+1, testutil.ToFloat64(c), 1e-9)
		})
	}
}

func TestReceiveOutcomes_ByLabel(t *testing.T) {
	metrics.MustRegister()

	timeout := metrics.KafkaReceiveOutcomes.WithLabelValues("timeout")
	eof := metrics.KafkaReceiveOutcomes.WithLabelValues("end_of_partition")
	tBefore, eBefore := testutil.ToFloat64(timeout), testutil.ToFloat64(eof)

	timeout.Inc()

	assert.InDelta(t, tBefore+1, testutil.ToFloat64(timeout), 1e-9)
	assert.InDelta(t, eBefore, testutil.ToFloat64(eof), 1e-9)
}

func TestHandlerDuration_Observed(t *testing.T) {
	metrics.MustRegister()

	metrics.HandlerDuration.WithLabelValues("metrics-test").Observe(0.01)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.HandlerDuration), 1)
}

func TestCacheMetrics(t *testing.T) {
	metrics.MustRegister()

	hit := metrics.CacheOps.WithLabelValues("hit")
	before := testutil.ToFloat64(hit)
	hit.Add(2)
	assert.InDelta(t, before+2, testutil.ToFloat64(hit), 1e-9)

	cur := testutil.ToFloat64(metrics.CacheSize)
	metrics.CacheSize.Set(cur + 5)
	assert.InDelta(t, cur+5, testutil.ToFloat64(metrics.CacheSize), 1e-9)
	metrics.CacheSize.Set(cur)
}
