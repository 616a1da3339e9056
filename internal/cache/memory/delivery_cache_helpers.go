package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/kafka_consumer/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(c.ll.Len()))
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.key)
	}
	c.ll.Remove(elem)
}

func (c *LRUCacheTTL) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRUCacheTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — снимает просроченные с хвоста, пока не встретит живой.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !c.isExpired(back.Value.(*entry), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
}

// pruneExpired — полный проход: порядок LRU не совпадает с порядком истечения.
func (c *LRUCacheTTL) pruneExpired(now time.Time) int {
	if c.ttl <= 0 {
		return 0
	}
	removed := 0
	for elem := c.ll.Back(); elem != nil; {
		prev := elem.Prev()
		if c.isExpired(elem.Value.(*entry), now) {
			c.removeElement(elem)
			removed++
		}
		elem = prev
	}
	if removed > 0 {
		metrics.CacheOps.WithLabelValues("expired").Add(float64(removed))
		metrics.CacheSize.Set(float64(len(c.index)))
	}
	return removed
}
