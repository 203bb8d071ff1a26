// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package api

import (
	"context"
	"time"

	"github.com/tomtom215/hotpick/internal/cache"
	"github.com/tomtom215/hotpick/internal/catalog"
	"github.com/tomtom215/hotpick/internal/recommend"
)

// Suggester is the application surface the handlers call.
type Suggester interface {
	RankAgainstItem(ctx context.Context, itemID string, topN int, format string) (*recommend.Result, error)
	RankAgainstUser(ctx context.Context, username string, topN int, format string) (*recommend.Result, error)
	RefreshHotSet(ctx context.Context) (int, error)
	Search(ctx context.Context, query string) ([]catalog.Candidate, error)
}

// BreakerStater reports the upstream circuit breaker state
// ("closed", "half-open", "open").
type BreakerStater interface {
	BreakerState() string
}

// CacheStatser exposes cache counters for /health.
type CacheStatser interface {
	Stats() cache.Stats
}

// RefreshStatser exposes periodic refresh counters for /health.
type RefreshStatser interface {
	Runs() int64
	Failures() int64
}

// HandlerConfig tunes request handling.
type HandlerConfig struct {
	// DefaultTopN applies when top_n is absent.
	DefaultTopN int

	// MaxTopN bounds top_n.
	MaxTopN int

	// DefaultFormat applies when format is absent.
	DefaultFormat string

	// RequestTimeout bounds one suggestion request end to end.
	RequestTimeout time.Duration

	// RefreshTimeout bounds a forced hot set refresh, which visits every
	// hot item.
	RefreshTimeout time.Duration

	// Version is reported by /health.
	Version string
}

// DefaultHandlerConfig returns production defaults.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		DefaultTopN:    5,
		MaxTopN:        50,
		DefaultFormat:  string(recommend.FormatStructured),
		RequestTimeout: 2 * time.Minute,
		RefreshTimeout: 10 * time.Minute,
		Version:        "dev",
	}
}

// Handler serves the HTTP API.
type Handler struct {
	svc     Suggester
	breaker BreakerStater
	caches  map[string]CacheStatser
	refresh RefreshStatser
	cfg     HandlerConfig
	started time.Time
}

// HandlerOption adds optional /health sources.
type HandlerOption func(*Handler)

// WithCacheStats reports c under name in /health.
func WithCacheStats(name string, c CacheStatser) HandlerOption {
	return func(h *Handler) {
		if h.caches == nil {
			h.caches = make(map[string]CacheStatser)
		}
		h.caches[name] = c
	}
}

// WithRefreshStats reports the periodic hot refresh in /health.
func WithRefreshStats(r RefreshStatser) HandlerOption {
	return func(h *Handler) {
		h.refresh = r
	}
}

// NewHandler creates a handler. breaker may be nil.
func NewHandler(svc Suggester, breaker BreakerStater, cfg HandlerConfig, opts ...HandlerOption) *Handler {
	def := DefaultHandlerConfig()
	if cfg.DefaultTopN <= 0 {
		cfg.DefaultTopN = def.DefaultTopN
	}
	if cfg.MaxTopN <= 0 {
		cfg.MaxTopN = def.MaxTopN
	}
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = def.DefaultFormat
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = def.RefreshTimeout
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}

	h := &Handler{
		svc:     svc,
		breaker: breaker,
		cfg:     cfg,
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
