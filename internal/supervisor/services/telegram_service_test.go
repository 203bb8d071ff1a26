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

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/hotpick/internal/telegram"
)

type fakeUpdateSource struct {
	ch      chan tgbotapi.Update
	stopped atomic.Bool
}

func (s *fakeUpdateSource) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return s.ch
}

func (s *fakeUpdateSource) StopReceivingUpdates() { s.stopped.Store(true) }

type recordingHandler struct {
	handled chan int
}

func (h *recordingHandler) HandleUpdate(_ context.Context, u tgbotapi.Update) {
	h.handled <- u.UpdateID
}

var _ suture.Service = (*TelegramService)(nil)

func TestTelegramService_PollsUntilCanceled(t *testing.T) {
	src := &fakeUpdateSource{ch: make(chan tgbotapi.Update, 1)}
	h := &recordingHandler{handled: make(chan int, 1)}
	svc := NewTelegramService(func() (telegram.UpdateSource, error) { return src, nil }, h,
		TelegramPollerConfig{TimeoutSeconds: 30, Concurrency: 2}, zerolog.Nop())

	src.ch <- tgbotapi.Update{UpdateID: 7}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	select {
	case id := <-h.handled:
		if id != 7 {
			t.Errorf("handled update %d, want 7", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("update not handled")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if !src.stopped.Load() {
		t.Error("update source not stopped")
	}
	if svc.String() != "telegram-poller" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestTelegramService_ConnectError(t *testing.T) {
	connErr := errors.New("401 unauthorized")
	svc := NewTelegramService(func() (telegram.UpdateSource, error) { return nil, connErr },
		&recordingHandler{handled: make(chan int, 1)}, TelegramPollerConfig{}, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, connErr) {
		t.Errorf("Serve() = %v, want connect error", err)
	}
}

func TestTelegramService_ClosedChannelReconnects(t *testing.T) {
	var connects atomic.Int32
	svc := NewTelegramService(func() (telegram.UpdateSource, error) {
		connects.Add(1)
		ch := make(chan tgbotapi.Update)
		close(ch)
		return &fakeUpdateSource{ch: ch}, nil
	}, &recordingHandler{handled: make(chan int, 1)}, TelegramPollerConfig{}, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, telegram.ErrUpdatesClosed) {
		t.Fatalf("Serve() = %v, want ErrUpdatesClosed", err)
	}

	_ = svc.Serve(context.Background())
	if got := connects.Load(); got != 2 {
		t.Errorf("connect called %d times, want one per Serve", got)
	}
}
