// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/cache"
	"github.com/tomtom215/hotpick/internal/recommend"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestHotCache_LoadPreservesTrendingOrder(t *testing.T) {
	f := newHotFake(3)
	f.hot[0].Thumbnail = "list-thumb"
	f.details["1"] = Details{Features: nil, Description: "d1"}

	h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())
	set, err := h.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(set) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(set))
	}
	for i, want := range []string{"1", "2", "3"} {
		if set[i].ID != want {
			t.Errorf("set[%d].ID = %s, want %s", i, set[i].ID, want)
		}
	}
	if set[0].Thumbnail != "list-thumb" {
		t.Errorf("Expected hot list thumbnail fallback, got %q", set[0].Thumbnail)
	}
	if set[0].Features == nil {
		t.Error("Expected non-nil feature slice")
	}
	if set[1].Name != "Game 2" || set[1].Description != "desc" {
		t.Errorf("set[1] = %+v", set[1])
	}
}

func TestHotCache_UpstreamOncePerTTL(t *testing.T) {
	clock := &testClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	f := newHotFake(2)
	h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop(), cache.WithClock(clock.Now))
	ctx := context.Background()

	first, err := h.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := h.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.hotCalls.Load() != 1 {
		t.Fatalf("Expected 1 upstream call within TTL, got %d", f.hotCalls.Load())
	}
	if &first[0] != &second[0] {
		t.Error("Expected the same snapshot within the TTL")
	}

	clock.Advance(time.Hour)
	if _, err := h.Load(ctx); err != nil {
		t.Fatalf("Load after expiry: %v", err)
	}
	if f.hotCalls.Load() != 2 {
		t.Errorf("Expected exactly one more upstream call after expiry, got %d", f.hotCalls.Load())
	}
}

func TestHotCache_PartialRefreshThreshold(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		failing   []string
		wantErr   bool
		wantItems int
	}{
		{"all loaded", 5, nil, false, 5},
		{"one of five dropped (0.8)", 5, []string{"3"}, false, 4},
		{"two of five dropped (0.6)", 5, []string{"2", "4"}, true, 0},
		{"everything dropped", 2, []string{"1", "2"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHotFake(tt.total)
			for _, id := range tt.failing {
				f.detailErrs[id] = errors.New("bad xml")
			}

			h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())
			set, err := h.Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, recommend.ErrUpstreamUnavailable) {
					t.Errorf("Expected UpstreamUnavailable, got %v", err)
				}
				if h.Stats().TotalKeys != 0 {
					t.Error("Rejected refresh must not be cached")
				}
				return
			}
			if len(set) != tt.wantItems {
				t.Errorf("items = %d, want %d", len(set), tt.wantItems)
			}
		})
	}
}

func TestHotCache_RejectedRefreshKeepsPreviousSnapshot(t *testing.T) {
	f := newHotFake(2)
	h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())
	ctx := context.Background()

	before, err := h.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f.mu.Lock()
	f.detailErrs["1"] = errors.New("boom")
	f.detailErrs["2"] = errors.New("boom")
	f.mu.Unlock()

	if _, err := h.Refresh(ctx); !errors.Is(err, recommend.ErrUpstreamUnavailable) {
		t.Fatalf("Expected UpstreamUnavailable from Refresh, got %v", err)
	}

	after, err := h.Load(ctx)
	if err != nil {
		t.Fatalf("Load after failed refresh: %v", err)
	}
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Errorf("Expected previous snapshot, got %+v", after)
	}
	if f.hotCalls.Load() != 2 {
		t.Errorf("Expected Load to be served from cache, hot calls = %d", f.hotCalls.Load())
	}
}

func TestHotCache_RefreshForcesReload(t *testing.T) {
	f := newHotFake(1)
	h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())
	ctx := context.Background()

	if _, err := h.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	f.hot = append(f.hot, HotEntry{ID: "9", Name: "New Hotness"})
	f.details["9"] = detailsFor("y")

	set, err := h.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(set) != 2 || set[1].ID != "9" {
		t.Errorf("Refresh did not pick up the new list: %+v", set)
	}
	if f.hotCalls.Load() != 2 {
		t.Errorf("hot calls = %d, want 2", f.hotCalls.Load())
	}
}

func TestHotCache_UpstreamFailures(t *testing.T) {
	t.Run("hot list error", func(t *testing.T) {
		f := newHotFake(1)
		f.hotErr = errors.New("503")
		h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())
		_, err := h.Load(context.Background())
		if !recommend.IsRetryable(err) {
			t.Errorf("Expected retryable upstream error, got %v", err)
		}
	})

	t.Run("empty hot list", func(t *testing.T) {
		f := newHotFake(0)
		h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())
		_, err := h.Load(context.Background())
		if !errors.Is(err, recommend.ErrUpstreamUnavailable) {
			t.Errorf("Expected UpstreamUnavailable, got %v", err)
		}
		if h.Stats().TotalKeys != 0 {
			t.Error("Empty hot set must not be cached")
		}
	})

	t.Run("timeout aborts without caching", func(t *testing.T) {
		f := newHotFake(3)
		f.block = make(chan struct{})
		defer close(f.block)

		cfg := DefaultHotConfig()
		cfg.CallTimeout = 20 * time.Millisecond
		h := NewHotCache(f, cfg, zerolog.Nop())

		_, err := h.Load(context.Background())
		if !errors.Is(err, recommend.ErrUpstreamUnavailable) {
			t.Fatalf("Expected UpstreamUnavailable, got %v", err)
		}
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Expected deadline cause, got %v", err)
		}
		if f.detailCalls.Load() != 1 {
			t.Errorf("Expected refresh to stop at the first timeout, detail calls = %d", f.detailCalls.Load())
		}
		if h.Stats().TotalKeys != 0 {
			t.Error("Timed-out refresh must not be cached")
		}
	})
}

func TestHotCache_ConcurrentLoadsCoalesce(t *testing.T) {
	f := newHotFake(2)
	f.block = make(chan struct{})
	h := NewHotCache(f, DefaultHotConfig(), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.Load(context.Background()); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(f.block)
	wg.Wait()

	if f.hotCalls.Load() != 1 {
		t.Errorf("Expected one upstream refresh, got %d", f.hotCalls.Load())
	}
}
