// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package main is the entry point for the hotpick server.
//
// hotpick suggests trending BoardGameGeek games to a user by ranking the
// current hot list against the games they already own, want or play.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, environment (koanf v2)
//  2. Logging: zerolog global logger
//  3. BGG client: retrying HTTP transport behind a rate limiter and a circuit breaker
//  4. Caches: hot set and per-user collections
//  5. Ranking engine and suggestion service
//  6. Front ends: JSON API (chi) and, with TELEGRAM_TOKEN, the Telegram bot
//  7. Supervisor tree: hot refresh scheduler, HTTP server, Telegram poller
//
// # Example
//
//	export TELEGRAM_TOKEN=123456:ABC...
//	export LOG_FORMAT=console
//	./hotpick
//
//	curl localhost:8080/api/v1/suggestions/user/alice?top_n=3&format=markdown
//
// # Signals
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains for
// HTTP_SHUTDOWN_TIMEOUT, the Telegram poller finishes in-flight updates,
// and the refresh scheduler waits for a running refresh.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/hotpick/internal/config"
	"github.com/tomtom215/hotpick/internal/logging"
	"github.com/tomtom215/hotpick/internal/supervisor"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Stringer("config", cfg).
		Msg("Starting hotpick")

	app, err := build(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	app.register(tree)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	if len(unstopped) > 0 {
		os.Exit(1)
	}

	logging.Info().Msg("hotpick stopped")
}
