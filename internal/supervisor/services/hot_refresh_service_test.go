// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type fakeRefresher struct {
	calls  atomic.Int32
	err    error
	called chan struct{}
}

func newFakeRefresher() *fakeRefresher {
	return &fakeRefresher{called: make(chan struct{}, 64)}
}

func (f *fakeRefresher) RefreshHotSet(ctx context.Context) (int, error) {
	f.calls.Add(1)
	select {
	case f.called <- struct{}{}:
	default:
	}
	if f.err != nil {
		return 0, f.err
	}
	return 50, nil
}

func (f *fakeRefresher) waitCalls(t *testing.T, n int32) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for f.calls.Load() < n {
		select {
		case <-f.called:
		case <-deadline:
			t.Fatalf("refresh called %d times, want at least %d", f.calls.Load(), n)
		}
	}
}

// everySchedule fires at a fixed sub-second interval.
type everySchedule time.Duration

func (e everySchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

var _ suture.Service = (*HotRefreshService)(nil)

func TestNewHotRefreshService_Defaults(t *testing.T) {
	svc, err := NewHotRefreshService(newFakeRefresher(), HotRefreshConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHotRefreshService: %v", err)
	}
	if svc.config.Schedule != "@every 60m" {
		t.Errorf("Schedule = %q", svc.config.Schedule)
	}
	if svc.config.Timeout != 10*time.Minute {
		t.Errorf("Timeout = %v", svc.config.Timeout)
	}

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := svc.schedule.Next(now); !got.Equal(now.Add(time.Hour)) {
		t.Errorf("next run = %v, want one hour later", got)
	}
	if svc.String() != "hot-refresh" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestNewHotRefreshService_InvalidSchedule(t *testing.T) {
	_, err := NewHotRefreshService(newFakeRefresher(), HotRefreshConfig{Schedule: "every hour"}, zerolog.Nop())
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestHotRefreshService_WarmUpThenSchedule(t *testing.T) {
	ref := newFakeRefresher()
	svc, err := NewHotRefreshService(ref,
		HotRefreshConfig{WarmUp: true, Timeout: time.Second},
		zerolog.Nop(),
		WithSchedule(everySchedule(20*time.Millisecond)),
	)
	if err != nil {
		t.Fatalf("NewHotRefreshService: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	ref.waitCalls(t, 3)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if svc.Runs() < 3 {
		t.Errorf("Runs() = %d, want >= 3", svc.Runs())
	}
	if svc.Failures() != 0 {
		t.Errorf("Failures() = %d, want 0", svc.Failures())
	}
}

func TestHotRefreshService_NoWarmUp(t *testing.T) {
	ref := newFakeRefresher()
	svc, _ := NewHotRefreshService(ref, HotRefreshConfig{Timeout: time.Second}, zerolog.Nop(),
		WithSchedule(everySchedule(time.Hour)))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-errCh

	if got := ref.calls.Load(); got != 0 {
		t.Errorf("refresh called %d times before first tick, want 0", got)
	}
}

func TestHotRefreshService_FailuresKeepRunning(t *testing.T) {
	ref := newFakeRefresher()
	ref.err = errors.New("bgg unavailable")
	svc, _ := NewHotRefreshService(ref, HotRefreshConfig{WarmUp: true, Timeout: time.Second}, zerolog.Nop(),
		WithSchedule(everySchedule(20*time.Millisecond)))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	ref.waitCalls(t, 2)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if svc.Failures() < 2 {
		t.Errorf("Failures() = %d, want >= 2", svc.Failures())
	}
}

func TestHotRefreshService_NilRefresherDoesNotRestart(t *testing.T) {
	svc, _ := NewHotRefreshService(nil, HotRefreshConfig{}, zerolog.Nop())
	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
	}
}
