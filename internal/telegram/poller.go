// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// ErrUpdatesClosed is returned by Poller.Run when the update channel
// closes while the context is still live.
var ErrUpdatesClosed = errors.New("telegram update channel closed")

// UpdateSource is the long-polling half of tgbotapi.BotAPI.
type UpdateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// UpdateHandler processes one update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// NewAPI connects to the Bot API. An empty endpoint selects the public
// Telegram server.
func NewAPI(token, endpoint string) (*tgbotapi.BotAPI, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot api: %w", err)
	}
	return api, nil
}

// Poller long-polls for updates and hands each to the handler in its own
// goroutine, at most Concurrency at a time.
type Poller struct {
	source      UpdateSource
	handler     UpdateHandler
	timeout     int
	concurrency int64
	logger      zerolog.Logger
}

// NewPoller creates a poller. timeoutSeconds is the long-poll timeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPoller(source UpdateSource, handler UpdateHandler, timeoutSeconds, concurrency int, logger zerolog.Logger) *Poller {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Poller{
		source:      source,
		handler:     handler,
		timeout:     timeoutSeconds,
		concurrency: int64(concurrency),
		logger:      logger.With().Str("component", "telegram_poller").Logger(),
	}
}

// Run polls until ctx ends, then waits for in-flight updates.
func (p *Poller) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = p.timeout
	cfg.AllowedUpdates = []string{"message", "callback_query"}

	updates := p.source.GetUpdatesChan(cfg)
	defer p.source.StopReceivingUpdates()

	sem := semaphore.NewWeighted(p.concurrency)
	var wg sync.WaitGroup
	defer wg.Wait()

	p.logger.Info().Int64("concurrency", p.concurrency).Msg("polling telegram updates")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return ErrUpdatesClosed
			}
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(1)
				p.handler.HandleUpdate(ctx, update)
			}()
		}
	}
}
