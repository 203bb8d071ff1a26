// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/cache"
	"github.com/tomtom215/hotpick/internal/metrics"
	"github.com/tomtom215/hotpick/internal/recommend"
)

// HotKey is the single cache slot holding the hot set.
const HotKey = "hot_boardgames"

var errEmptyHotList = errors.New("hot list is empty")

// HotSource is what the hot cache needs from the upstream.
type HotSource interface {
	HotLister
	DetailFetcher
}

// HotConfig configures the hot-item cache.
type HotConfig struct {
	// TTL is how long a committed hot set stays fresh.
	TTL time.Duration

	// MinSuccessRatio is the share of hot entries whose details must load
	// for a refresh to be committed.
	MinSuccessRatio float64

	// CallTimeout bounds each upstream call.
	CallTimeout time.Duration
}

// DefaultHotConfig returns the production defaults.
func DefaultHotConfig() HotConfig {
	return HotConfig{
		TTL:             time.Hour,
		MinSuccessRatio: 0.8,
		CallTimeout:     30 * time.Second,
	}
}

// HotCache holds the current trending set. Loads of an absent or expired set
// go to the upstream once, however many callers are waiting.
type HotCache struct {
	source HotSource
	cfg    HotConfig
	loader *cache.Loader[recommend.HotSet]
	logger zerolog.Logger
}

// NewHotCache creates a hot-item cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHotCache(source HotSource, cfg HotConfig, logger zerolog.Logger, opts ...cache.Option) *HotCache {
	def := DefaultHotConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MinSuccessRatio <= 0 || cfg.MinSuccessRatio > 1 {
		cfg.MinSuccessRatio = def.MinSuccessRatio
	}

	return &HotCache{
		source: source,
		cfg:    cfg,
		loader: cache.NewLoader(cache.NewTTL[recommend.HotSet]("hot", 1, cfg.TTL, opts...)),
		logger: logger.With().Str("component", "hot_cache").Logger(),
	}
}

// Load returns the cached hot set, fetching it if absent or expired.
func (h *HotCache) Load(ctx context.Context) (recommend.HotSet, error) {
	set, cached, err := h.loader.Get(ctx, HotKey, h.fetch)
	if err != nil {
		return nil, fmt.Errorf("load hot set: %w", upstreamError("hot set", err))
	}
	if !cached {
		h.logger.Debug().Int("items", len(set)).Msg("hot set loaded from upstream")
	}
	return set, nil
}

// Refresh fetches a new hot set regardless of freshness. A rejected or
// failed refresh leaves the previous snapshot in place.
func (h *HotCache) Refresh(ctx context.Context) (recommend.HotSet, error) {
	set, err := h.loader.Reload(ctx, HotKey, h.fetch)
	if err != nil {
		return nil, fmt.Errorf("refresh hot set: %w", upstreamError("hot set", err))
	}
	return set, nil
}

// Stats exposes the underlying cache counters.
func (h *HotCache) Stats() cache.Stats {
	return h.loader.Cache().Stats()
}

// fetch builds a complete hot set from the upstream. Items whose details
// fail are dropped; the result is rejected unless enough of them loaded.
func (h *HotCache) fetch(ctx context.Context) (recommend.HotSet, error) {
	start := time.Now()
	h.logger.Info().Msg("updating hot boardgames cache")

	entries, err := callWithTimeout(ctx, h.cfg.CallTimeout, h.source.HotItems)
	if err == nil && len(entries) == 0 {
		err = errEmptyHotList
	}
	if err != nil {
		metrics.RecordHotRefresh("error", 0, time.Since(start))
		return nil, upstreamError("hot list", err)
	}

	set := make(recommend.HotSet, 0, len(entries))
	for _, entry := range entries {
		details, err := callWithTimeout(ctx, h.cfg.CallTimeout, func(ctx context.Context) (Details, error) {
			return h.source.ItemDetails(ctx, entry.ID)
		})
		if err != nil {
			if isAbort(ctx, err) {
				metrics.RecordHotRefresh("error", 0, time.Since(start))
				return nil, upstreamError("hot item "+entry.ID, err)
			}
			h.logger.Warn().Err(err).Str("id", entry.ID).Str("name", entry.Name).Msg("dropping hot item without details")
			continue
		}
		set = append(set, hotItem(entry, details))
	}

	ratio := float64(len(set)) / float64(len(entries))
	if len(set) == 0 || ratio < h.cfg.MinSuccessRatio {
		metrics.RecordHotRefresh("rejected", len(set), time.Since(start))
		h.logger.Warn().
			Int("loaded", len(set)).
			Int("total", len(entries)).
			Float64("min_ratio", h.cfg.MinSuccessRatio).
			Msg("hot set refresh rejected, keeping previous snapshot")
		return nil, recommend.UpstreamUnavailable("hot set refresh",
			fmt.Errorf("only %d of %d hot items loaded", len(set), len(entries)))
	}

	metrics.RecordHotRefresh("committed", len(set), time.Since(start))
	h.logger.Info().
		Int("items", len(set)).
		Int("dropped", len(entries)-len(set)).
		Dur("duration", time.Since(start)).
		Msg("hot set refreshed")
	return set, nil
}

func hotItem(entry HotEntry, d Details) recommend.Item {
	item := recommend.Item{
		ID:          entry.ID,
		Name:        entry.Name,
		Features:    d.Features,
		Description: d.Description,
		Thumbnail:   d.Thumbnail,
	}
	if item.Name == "" {
		item.Name = d.Name
	}
	if item.Thumbnail == "" {
		item.Thumbnail = entry.Thumbnail
	}
	if item.Features == nil {
		item.Features = []recommend.Feature{}
	}
	return item
}
