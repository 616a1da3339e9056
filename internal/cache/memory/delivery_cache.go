package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/kafka_consumer/internal/ports"
	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
)

var (
	_ ports.DeliveryCache = (*LRUCacheTTL)(nil)
	_ ports.Cleaner       = (*LRUCacheTTL)(nil)
)

type entry struct {
	key       string
	expiresAt time.Time
}

// LRUCacheTTL — множество ключей доставок с вытеснением LRU и TTL.
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Seen — был ли ключ отмечен и ещё не истёк.
func (c *LRUCacheTTL) Seen(_ context.Context, key string) bool {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return false
	}
	if c.isExpired(elem.Value.(*entry), now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return false
	}

	c.ll.MoveToFront(elem)
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return true
}

// Mark — отметить ключ как обработанный.
func (c *LRUCacheTTL) Mark(_ context.Context, key string) {
	if key == "" {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		elem.Value.(*entry).expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	c.index[key] = c.ll.PushFront(&entry{key: key, expiresAt: c.expiryFrom(now)})
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}

// PruneExpired — удаляет все просроченные ключи.
func (c *LRUCacheTTL) PruneExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pruneExpired(c.now())
}

// CleanUp — хук после диспетчеризации сообщения.
func (c *LRUCacheTTL) CleanUp() { _ = c.PruneExpired() }

// Len — текущее число ключей.
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
