// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoader_HitsUpstreamOncePerTTL(t *testing.T) {
	clock := newFakeClock()
	l := NewLoader(NewTTL[[]string]("test_loader_ttl", 1, time.Hour, WithClock(clock.Now)))

	var calls int32
	fn := func(ctx context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"A", "B"}, nil
	}

	ctx := context.Background()
	first, cached, err := l.Get(ctx, "hot_boardgames", fn)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cached {
		t.Error("Expected first Get to load")
	}

	second, cached, err := l.Get(ctx, "hot_boardgames", fn)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !cached {
		t.Error("Expected second Get to come from cache")
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Errorf("Expected identical snapshots, got %v and %v", first, second)
	}
	if calls != 1 {
		t.Fatalf("Expected 1 upstream call within TTL, got %d", calls)
	}

	clock.Advance(time.Hour)
	if _, _, err := l.Get(ctx, "hot_boardgames", fn); err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected exactly one more upstream call after expiry, got %d total", calls)
	}
}

func TestLoader_CoalescesConcurrentLoads(t *testing.T) {
	l := NewLoader(NewTTL[int]("test_loader_coalesce", 10, time.Hour))

	var calls int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, nil
	}

	const n = 20
	var wg sync.WaitGroup
	results := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := l.Get(context.Background(), "user", fn)
			if err != nil {
				t.Errorf("Get: %v", err)
			}
			results[i] = v
		}(i)
	}

	// Give the goroutines time to pile onto the flight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", calls)
	}
	for i, v := range results {
		if v != 7 {
			t.Errorf("result[%d] = %d, want 7", i, v)
		}
	}
}

func TestLoader_FailedLoadIsNotCached(t *testing.T) {
	l := NewLoader(NewTTL[int]("test_loader_fail", 10, time.Hour))
	boom := errors.New("upstream down")

	_, _, err := l.Get(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected upstream error, got %v", err)
	}
	if l.Cache().Len() != 0 {
		t.Fatal("Expected nothing cached after a failed load")
	}

	v, cached, err := l.Get(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 3, nil
	})
	if err != nil || cached || v != 3 {
		t.Errorf("Get = %d, %v, %v; want 3, false, nil", v, cached, err)
	}
}

func TestLoader_ReloadIgnoresFreshness(t *testing.T) {
	l := NewLoader(NewTTL[int]("test_loader_reload", 10, time.Hour))
	ctx := context.Background()

	l.Cache().Set("hot", 1)

	v, err := l.Reload(ctx, "hot", func(ctx context.Context) (int, error) { return 2, nil })
	if err != nil || v != 2 {
		t.Fatalf("Reload = %d, %v; want 2, nil", v, err)
	}
	if got, _ := l.Cache().Get("hot"); got != 2 {
		t.Errorf("Expected cache to hold reloaded value, got %d", got)
	}

	// A failed reload keeps the previous snapshot.
	_, err = l.Reload(ctx, "hot", func(ctx context.Context) (int, error) { return 0, errors.New("nope") })
	if err == nil {
		t.Fatal("Expected reload error")
	}
	if got, ok := l.Cache().Get("hot"); !ok || got != 2 {
		t.Errorf("Expected previous snapshot 2 to survive, got %d, %v", got, ok)
	}
}

func TestLoader_CanceledCallerDoesNotFailOthers(t *testing.T) {
	l := NewLoader(NewTTL[int]("test_loader_detached", 10, time.Hour))

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	fn := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		select {
		case <-release:
			return 42, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := l.Get(firstCtx, "user", fn)
		firstErr <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, _, err := l.Get(context.Background(), "user", fn)
		second <- result{v, err}
	}()

	// Let the second caller join the flight, then abandon the first.
	time.Sleep(20 * time.Millisecond)
	cancelFirst()

	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("first caller err = %v, want context.Canceled", err)
	}

	close(release)
	got := <-second
	if got.err != nil || got.v != 42 {
		t.Fatalf("second caller = %d, %v; want 42, nil", got.v, got.err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", calls)
	}
	if v, ok := l.Cache().Get("user"); !ok || v != 42 {
		t.Errorf("Expected loaded value to be cached, got %d, %v", v, ok)
	}
}

func TestLoader_FlightTimeout(t *testing.T) {
	l := NewLoader(NewTTL[int]("test_loader_flight_timeout", 10, time.Hour), WithFlightTimeout(20*time.Millisecond))

	_, _, err := l.Get(context.Background(), "slow", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected flight deadline, got %v", err)
	}
	if l.Cache().Len() != 0 {
		t.Error("Expected nothing cached after a timed out load")
	}
}

func TestLoader_MissCountedOnce(t *testing.T) {
	l := NewLoader(NewTTL[int]("test_loader_miss_count", 10, time.Hour))
	ctx := context.Background()
	fn := func(ctx context.Context) (int, error) { return 1, nil }

	if _, _, err := l.Get(ctx, "k", fn); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, _, err := l.Get(ctx, "k", fn); err != nil {
		t.Fatalf("Get: %v", err)
	}

	s := l.Cache().Stats()
	if s.Misses != 1 || s.Hits != 1 {
		t.Errorf("Stats = %+v; want 1 miss, 1 hit", s)
	}
}
