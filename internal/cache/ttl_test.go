// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestTTL_BasicOperations(t *testing.T) {
	c := NewTTL[int]("test_basic", 3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}
	if c.Len() != 2 {
		t.Errorf("Expected len 2, got %d", c.Len())
	}

	if !c.Delete("a") {
		t.Error("Expected Delete(a) to report presence")
	}
	if c.Delete("a") {
		t.Error("Expected second Delete(a) to report absence")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected len 0 after Clear, got %d", c.Len())
	}
}

func TestTTL_ExpiresAtBoundary(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL[string]("test_expiry", 10, time.Hour, WithClock(clock.Now))

	c.Set("hot_boardgames", "snapshot")

	clock.Advance(time.Hour - time.Nanosecond)
	if _, ok := c.Get("hot_boardgames"); !ok {
		t.Fatal("Expected entry to be fresh just before the TTL")
	}

	// now - insertedAt == ttl counts as expired
	clock.Advance(time.Nanosecond)
	if _, ok := c.Get("hot_boardgames"); ok {
		t.Fatal("Expected entry to be absent once the TTL has elapsed")
	}

	if c.Len() != 0 {
		t.Errorf("Expected expired entry to be removed, len = %d", c.Len())
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", s.Evictions)
	}
}

func TestTTL_EvictsLeastRecentlyInserted(t *testing.T) {
	c := NewTTL[int]("test_capacity", 3, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Reads do not protect an entry from eviction.
	c.Get("a")

	c.Set("d", 4)

	if _, ok := c.Get("a"); ok {
		t.Error("Expected 'a' to be evicted as the oldest insertion")
	}
	for _, k := range []string{"b", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("Expected %q to be present", k)
		}
	}
}

func TestTTL_ResetRefreshesInsertion(t *testing.T) {
	clock := newFakeClock()
	c := NewTTL[int]("test_reset", 2, time.Hour, WithClock(clock.Now))

	c.Set("a", 1)
	c.Set("b", 2)

	clock.Advance(30 * time.Minute)
	c.Set("a", 10) // a becomes the newest insertion

	c.Set("c", 3) // evicts b, not a
	if _, ok := c.Get("b"); ok {
		t.Error("Expected 'b' to be evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("Get(a) = %d, %v; want 10, true", v, ok)
	}

	// a was re-inserted 30 minutes in, so it survives past the original hour.
	clock.Advance(45 * time.Minute)
	if _, ok := c.Get("a"); !ok {
		t.Error("Expected re-set 'a' to still be fresh")
	}
}

func TestTTL_Defaults(t *testing.T) {
	c := NewTTL[int]("test_defaults", 0, 0)
	if c.capacity != 10 {
		t.Errorf("Expected default capacity 10, got %d", c.capacity)
	}
	if c.ttl != time.Hour {
		t.Errorf("Expected default ttl 1h, got %v", c.ttl)
	}
	if c.Name() != "test_defaults" {
		t.Errorf("Expected name test_defaults, got %s", c.Name())
	}
}

func TestTTL_Stats(t *testing.T) {
	c := NewTTL[int]("test_stats", 5, time.Minute)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("b")

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.TotalKeys != 1 {
		t.Errorf("Stats = %+v; want 2 hits, 1 miss, 1 key", s)
	}

	rate := s.HitRate()
	if rate < 66.6 || rate > 66.7 {
		t.Errorf("Expected hit rate ~66.67, got %f", rate)
	}
}

func TestTTL_Concurrent(t *testing.T) {
	c := NewTTL[int]("test_concurrent", 10, time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%20))
			c.Set(key, n)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	if c.Len() > 10 {
		t.Errorf("Expected at most 10 entries, got %d", c.Len())
	}
}
