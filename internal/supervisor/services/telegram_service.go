// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/telegram"
)

// UpdateSourceFactory opens a fresh long-polling connection. A
// tgbotapi.BotAPI cannot resume polling once stopped, so every Serve
// needs its own.
type UpdateSourceFactory func() (telegram.UpdateSource, error)

// TelegramPollerConfig mirrors the telegram.Poller knobs.
type TelegramPollerConfig struct {
	TimeoutSeconds int
	Concurrency    int
}

// TelegramService runs the Telegram long-poll loop under supervision.
// Connection failures and a closed update channel are returned to the
// supervisor, which restarts the service with backoff.
type TelegramService struct {
	connect UpdateSourceFactory
	handler telegram.UpdateHandler
	config  TelegramPollerConfig
	logger  zerolog.Logger
	name    string
}

// NewTelegramService creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTelegramService(connect UpdateSourceFactory, handler telegram.UpdateHandler, cfg TelegramPollerConfig, logger zerolog.Logger) *TelegramService {
	return &TelegramService{
		connect: connect,
		handler: handler,
		config:  cfg,
		logger:  logger.With().Str("service", "telegram").Logger(),
		name:    "telegram-poller",
	}
}

// Serve implements suture.Service.
func (t *TelegramService) Serve(ctx context.Context) error {
	source, err := t.connect()
	if err != nil {
		return fmt.Errorf("telegram connect: %w", err)
	}

	poller := telegram.NewPoller(source, t.handler, t.config.TimeoutSeconds, t.config.Concurrency, t.logger)
	err = poller.Run(ctx)
	if ctx.Err() != nil {
		t.logger.Info().Msg("telegram poller stopped")
		return ctx.Err()
	}
	return fmt.Errorf("telegram poller: %w", err)
}

// String identifies the service in supervisor events.
func (t *TelegramService) String() string {
	return t.name
}
