// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// HotRefresher reloads the hot set and reports how many items it holds.
// Satisfied by *suggest.Service.
type HotRefresher interface {
	RefreshHotSet(ctx context.Context) (int, error)
}

// HotRefreshConfig controls the periodic hot set refresh.
type HotRefreshConfig struct {
	// Schedule is a cron spec; descriptors such as "@every 60m" are accepted.
	Schedule string

	// WarmUp runs one refresh before the first scheduled one.
	WarmUp bool

	// Timeout bounds a single refresh.
	Timeout time.Duration
}

// DefaultHotRefreshConfig refreshes hourly with a warm-up on start.
func DefaultHotRefreshConfig() HotRefreshConfig {
	return HotRefreshConfig{
		Schedule: "@every 60m",
		WarmUp:   true,
		Timeout:  10 * time.Minute,
	}
}

// HotRefreshOption customizes a HotRefreshService.
type HotRefreshOption func(*HotRefreshService)

// WithSchedule replaces the parsed cron schedule. Tests use it for
// sub-second intervals, which cron specs cannot express.
func WithSchedule(s cron.Schedule) HotRefreshOption {
	return func(h *HotRefreshService) {
		h.schedule = s
	}
}

// HotRefreshService keeps the hot set warm by refreshing it on a cron
// schedule. Overlapping runs are skipped, not queued. A failed refresh is
// logged and leaves the previous snapshot in place; it never stops the
// service.
type HotRefreshService struct {
	refresher HotRefresher
	config    HotRefreshConfig
	schedule  cron.Schedule
	logger    zerolog.Logger
	name      string

	runs     atomic.Int64
	failures atomic.Int64
}

// NewHotRefreshService validates the schedule and creates the service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHotRefreshService(refresher HotRefresher, cfg HotRefreshConfig, logger zerolog.Logger, opts ...HotRefreshOption) (*HotRefreshService, error) {
	defaults := DefaultHotRefreshConfig()
	if cfg.Schedule == "" {
		cfg.Schedule = defaults.Schedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	h := &HotRefreshService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "hot_refresh").Logger(),
		name:      "hot-refresh",
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.schedule == nil {
		sched, err := cron.ParseStandard(cfg.Schedule)
		if err != nil {
			return nil, fmt.Errorf("parse hot refresh schedule %q: %w", cfg.Schedule, err)
		}
		h.schedule = sched
	}
	return h, nil
}

// Serve implements suture.Service.
func (h *HotRefreshService) Serve(ctx context.Context) error {
	if h.refresher == nil {
		return fmt.Errorf("hot refresh: no refresher: %w", suture.ErrDoNotRestart)
	}

	h.logger.Info().
		Str("schedule", h.config.Schedule).
		Bool("warm_up", h.config.WarmUp).
		Msg("hot refresh service starting")

	if h.config.WarmUp {
		h.refresh(ctx, "warm_up")
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	c := cron.New(
		cron.WithLogger(cronLogger{h.logger}),
		cron.WithChain(cron.Recover(cronLogger{h.logger}), cron.SkipIfStillRunning(cronLogger{h.logger})),
	)
	c.Schedule(h.schedule, cron.FuncJob(func() {
		h.refresh(ctx, "scheduled")
	}))
	c.Start()

	<-ctx.Done()

	// Stop returns a context that is done once running jobs finish. The
	// jobs observe ctx, so they are already unwinding.
	select {
	case <-c.Stop().Done():
	case <-time.After(h.config.Timeout):
		h.logger.Warn().Msg("hot refresh still running at shutdown")
	}

	h.logger.Info().Int64("runs", h.runs.Load()).Msg("hot refresh service stopped")
	return ctx.Err()
}

func (h *HotRefreshService) refresh(ctx context.Context, trigger string) {
	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	start := time.Now()
	n, err := h.refresher.RefreshHotSet(runCtx)
	h.runs.Add(1)
	if err != nil {
		h.failures.Add(1)
		h.logger.Warn().Err(err).Str("trigger", trigger).Dur("duration", time.Since(start)).
			Msg("hot set refresh failed, keeping previous snapshot")
		return
	}

	h.logger.Info().Str("trigger", trigger).Int("items", n).Dur("duration", time.Since(start)).
		Msg("hot set refreshed")
}

// Runs returns how many refreshes have completed, successful or not.
func (h *HotRefreshService) Runs() int64 {
	return h.runs.Load()
}

// Failures returns how many refreshes returned an error.
func (h *HotRefreshService) Failures() int64 {
	return h.failures.Load()
}

// String identifies the service in supervisor events.
func (h *HotRefreshService) String() string {
	return h.name
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
