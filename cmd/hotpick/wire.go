// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package main

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/tomtom215/hotpick/internal/api"
	"github.com/tomtom215/hotpick/internal/bgg"
	"github.com/tomtom215/hotpick/internal/catalog"
	"github.com/tomtom215/hotpick/internal/config"
	"github.com/tomtom215/hotpick/internal/logging"
	"github.com/tomtom215/hotpick/internal/recommend"
	"github.com/tomtom215/hotpick/internal/suggest"
	"github.com/tomtom215/hotpick/internal/supervisor"
	"github.com/tomtom215/hotpick/internal/supervisor/services"
	"github.com/tomtom215/hotpick/internal/telegram"
)

// app holds the supervised services built from one configuration.
type app struct {
	refresh  *services.HotRefreshService
	http     *services.HTTPServerService
	telegram *services.TelegramService
}

// register adds every built service to its supervisor layer.
func (a *app) register(tree *supervisor.SupervisorTree) {
	if a.refresh != nil {
		tree.AddRefreshService(a.refresh)
		logging.Info().Msg("Hot refresh service added to supervisor tree")
	}
	if a.http != nil {
		tree.AddFrontendService(a.http)
		logging.Info().Msg("HTTP API service added to supervisor tree")
	}
	if a.telegram != nil {
		tree.AddFrontendService(a.telegram)
		logging.Info().Msg("Telegram service added to supervisor tree")
	}
}

// build wires the BGG client, caches, engine and front ends.
func build(cfg *config.Config) (*app, error) {
	client := bgg.NewClient(bgg.Config{
		BaseURL:           cfg.BGG.BaseURL,
		Token:             cfg.BGG.Token,
		UserAgent:         cfg.BGG.UserAgent,
		Timeout:           cfg.BGG.Timeout,
		RetryMax:          cfg.BGG.RetryMax,
		RetryWaitMin:      cfg.BGG.RetryWaitMin,
		RetryWaitMax:      cfg.BGG.RetryWaitMax,
		RequestsPerSecond: cfg.BGG.RequestsPerSecond,
		Burst:             cfg.BGG.Burst,
		BreakerTimeout:    cfg.BGG.BreakerTimeout,
	}, logging.WithComponent("bgg"))

	hot := catalog.NewHotCache(client, catalog.HotConfig{
		TTL:             cfg.Cache.HotTTL,
		MinSuccessRatio: cfg.Cache.HotMinSuccessRatio,
		CallTimeout:     cfg.Cache.CallTimeout,
	}, logging.WithComponent("hot_cache"))

	collections := catalog.NewCollectionCache(client, catalog.CollectionConfig{
		TTL:      cfg.Cache.CollectionTTL,
		Capacity: cfg.Cache.CollectionCapacity,
		Retry: catalog.RetryPolicy{
			Attempts: cfg.Cache.CollectionRetryAttempts,
			Delay:    cfg.Cache.CollectionRetryDelay,
		},
		CallTimeout: cfg.Cache.CallTimeout,
	}, logging.WithComponent("collection_cache"))

	engine, err := recommend.NewEngine(&recommend.Config{
		DefaultTopN: cfg.Recommend.DefaultTopN,
		MaxTopN:     cfg.Recommend.MaxTopN,
		DefaultMode: recommend.Mode(cfg.Recommend.Mode),
		ExcludeByID: cfg.Recommend.ExcludeByID,
	}, logging.Logger())
	if err != nil {
		return nil, fmt.Errorf("ranking engine: %w", err)
	}

	svc, err := suggest.NewService(engine, hot, collections, client, suggest.Config{
		BaseURL:     cfg.Recommend.LinkBaseURL,
		Filters:     cfg.Recommend.Filters,
		CallTimeout: cfg.Cache.CallTimeout,
	}, logging.WithComponent("suggest"))
	if err != nil {
		return nil, fmt.Errorf("suggestion service: %w", err)
	}

	a := &app{}

	if cfg.Refresh.Enabled {
		a.refresh, err = services.NewHotRefreshService(svc, services.HotRefreshConfig{
			Schedule: cfg.Refresh.Schedule,
			WarmUp:   cfg.Refresh.WarmUp,
			Timeout:  cfg.Refresh.Timeout,
		}, logging.Logger())
		if err != nil {
			return nil, err
		}
	}

	if cfg.Server.Enabled {
		opts := []api.HandlerOption{
			api.WithCacheStats("hot", hot),
			api.WithCacheStats("collection", collections),
		}
		if a.refresh != nil {
			opts = append(opts, api.WithRefreshStats(a.refresh))
		}
		a.http = buildHTTP(cfg, svc, client, opts...)
	}

	if cfg.Telegram.Enabled() {
		a.telegram, err = buildTelegram(cfg, svc)
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

func buildHTTP(cfg *config.Config, svc *suggest.Service, client *bgg.Client, opts ...api.HandlerOption) *services.HTTPServerService {
	handler := api.NewHandler(svc, client, api.HandlerConfig{
		DefaultTopN:    cfg.API.DefaultTopN,
		MaxTopN:        cfg.API.MaxTopN,
		DefaultFormat:  cfg.API.DefaultFormat,
		RequestTimeout: cfg.API.RequestTimeout,
		RefreshTimeout: cfg.API.RefreshTimeout,
		Version:        version,
	}, opts...)
	mw := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins:   cfg.Security.CORSOrigins,
		CORSMaxAge:           cfg.Security.CORSMaxAge,
		RateLimitRequests:    cfg.Security.RateLimitReqs,
		RateLimitWindow:      cfg.Security.RateLimitWindow,
		RateLimitDisabled:    cfg.Security.RateLimitDisabled,
		RefreshLimitRequests: cfg.Security.RefreshLimitReqs,
		RefreshLimitWindow:   cfg.Security.RefreshLimitWindow,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.NewRouter(handler, mw).SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.Logger())
}

// buildTelegram connects once to validate the token. That connection
// serves the first poll; supervisor restarts open a new one.
func buildTelegram(cfg *config.Config, svc *suggest.Service) (*services.TelegramService, error) {
	botAPI, err := telegram.NewAPI(cfg.Telegram.Token, cfg.Telegram.APIEndpoint)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Str("bot", botAPI.Self.UserName).
		Str("token", logging.Redact(cfg.Telegram.Token)).
		Msg("Connected to Telegram")

	bot := telegram.NewBot(svc, telegram.NewAPISender(botAPI), telegram.Config{
		TopN:             cfg.Telegram.TopN,
		MaxSearchButtons: cfg.Telegram.MaxSearchButtons,
		RequestTimeout:   cfg.Telegram.RequestTimeout,
		ConversationTTL:  cfg.Telegram.ConversationTTL,
		MaxConversations: cfg.Telegram.MaxConversations,
	}, logging.WithComponent("telegram"))

	var (
		mu    sync.Mutex
		first = botAPI
	)
	connect := func() (telegram.UpdateSource, error) {
		mu.Lock()
		defer mu.Unlock()
		if first != nil {
			src := first
			first = nil
			return src, nil
		}
		src, err := telegram.NewAPI(cfg.Telegram.Token, cfg.Telegram.APIEndpoint)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	return services.NewTelegramService(connect, bot, services.TelegramPollerConfig{
		TimeoutSeconds: cfg.Telegram.PollTimeout,
		Concurrency:    cfg.Telegram.Concurrency,
	}, logging.Logger()), nil
}
