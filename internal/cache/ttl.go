// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/hotpick/internal/metrics"
)

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// HitRate returns the hit rate as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// ttlEntry is a node in the insertion-ordered list.
type ttlEntry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	prev       *ttlEntry[V]
	next       *ttlEntry[V]
}

// TTL is a thread-safe, bounded key/value store whose entries expire a fixed
// duration after insertion.
//
// Key features:
//   - O(1) Get, Set, Delete
//   - Lazy expiration: an entry is absent once now-insertedAt >= ttl
//   - Bounded size: inserting a new key at capacity evicts the
//     least-recently-inserted entry
//   - No background goroutine
//
// Ordering uses a doubly-linked list with sentinels. Get never reorders:
// the list tracks insertion, not access.
type TTL[V any] struct {
	mu sync.RWMutex

	name     string
	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*ttlEntry[V]

	// head.next is the newest insertion, tail.prev the oldest
	head *ttlEntry[V]
	tail *ttlEntry[V]

	hits      int64
	misses    int64
	evictions int64
}

// Option configures a TTL cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source. Tests use it to step past the TTL
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// NewTTL creates a TTL cache. The name labels the cache in metrics and logs.
func NewTTL[V any](name string, capacity int, ttl time.Duration, opts ...Option) *TTL[V] {
	if capacity <= 0 {
		capacity = 10
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &TTL[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		items:    make(map[string]*ttlEntry[V], capacity),
		head:     &ttlEntry[V]{},
		tail:     &ttlEntry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get returns the value stored under key if it has not expired.
// Expired entries are removed on the way out.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	entry, exists := c.items[key]
	if !exists {
		c.recordMissLocked()
		return zero, false
	}

	if c.now().Sub(entry.insertedAt) >= c.ttl {
		c.removeEntry(entry)
		c.evictions++
		metrics.CacheEvictions.WithLabelValues(c.name, "expired").Inc()
		c.recordMissLocked()
		return zero, false
	}

	c.hits++
	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return entry.value, true
}

// peek is Get without counters or removal. The loader uses it to re-check
// a key inside a flight so one miss is counted once.
func (c *TTL[V]) peek(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.items[key]
	if !exists || c.now().Sub(entry.insertedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Set stores value under key with a fresh insertion time.
// Re-setting an existing key moves it to the newest position.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.insertedAt = now
		c.unlink(entry)
		c.addToFront(entry)
		return
	}

	entry := &ttlEntry[V]{
		key:        key,
		value:      value,
		insertedAt: now,
	}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}

	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// Delete removes key. Returns true if it was present.
func (c *TTL[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Clear removes every entry.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*ttlEntry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
}

// Len returns the number of stored entries, including expired ones not yet
// observed by Get.
func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Name returns the cache label.
func (c *TTL[V]) Name() string {
	return c.name
}

// Stats returns hit, miss and eviction counts plus the current size.
func (c *TTL[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		TotalKeys: int64(len(c.items)),
	}
}

// Internal methods (must be called with lock held)

func (c *TTL[V]) recordMissLocked() {
	c.misses++
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func (c *TTL[V]) addToFront(entry *ttlEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *TTL[V]) unlink(entry *ttlEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
}

func (c *TTL[V]) removeEntry(entry *ttlEntry[V]) {
	c.unlink(entry)
	delete(c.items, entry.key)
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// evictOldest drops the least-recently-inserted entry.
func (c *TTL[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	c.evictions++
	metrics.CacheEvictions.WithLabelValues(c.name, "capacity").Inc()
}
