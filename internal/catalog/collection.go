// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/cache"
	"github.com/tomtom215/hotpick/internal/metrics"
	"github.com/tomtom215/hotpick/internal/recommend"
)

// CollectionSource is what the collection cache needs from the upstream.
type CollectionSource interface {
	CollectionFetcher
	DetailFetcher
}

// CollectionConfig configures the per-user collection cache.
type CollectionConfig struct {
	TTL         time.Duration
	Capacity    int
	Retry       RetryPolicy
	CallTimeout time.Duration
}

// DefaultCollectionConfig returns the production defaults.
func DefaultCollectionConfig() CollectionConfig {
	return CollectionConfig{
		TTL:         time.Hour,
		Capacity:    10,
		Retry:       DefaultRetryPolicy(),
		CallTimeout: 30 * time.Second,
	}
}

// CollectionCache holds the liked sets of recently asked-for users.
type CollectionCache struct {
	source CollectionSource
	cfg    CollectionConfig
	loader *cache.Loader[recommend.LikedSet]
	logger zerolog.Logger
}

// NewCollectionCache creates a collection cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCollectionCache(source CollectionSource, cfg CollectionConfig, logger zerolog.Logger, opts ...cache.Option) *CollectionCache {
	def := DefaultCollectionConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.Retry.Attempts <= 0 {
		cfg.Retry = def.Retry
	}

	return &CollectionCache{
		source: source,
		cfg:    cfg,
		loader: cache.NewLoader(cache.NewTTL[recommend.LikedSet]("collection", cfg.Capacity, cfg.TTL, opts...)),
		logger: logger.With().Str("component", "collection_cache").Logger(),
	}
}

// Load returns the liked set of username restricted to entries carrying at
// least one of filters.
func (c *CollectionCache) Load(ctx context.Context, username string, filters []string) (recommend.LikedSet, error) {
	if err := recommend.ValidateFilters(filters); err != nil {
		return nil, err
	}

	key := collectionKey(username, filters)
	set, cached, err := c.loader.Get(ctx, key, func(ctx context.Context) (recommend.LikedSet, error) {
		return c.fetch(ctx, username, filters)
	})
	if err != nil {
		return nil, fmt.Errorf("load collection of %q: %w", username, upstreamError("collection", err))
	}
	if cached {
		c.logger.Debug().Str("username", username).Int("items", len(set)).Msg("collection served from cache")
	}
	return set, nil
}

// Stats exposes the underlying cache counters.
func (c *CollectionCache) Stats() cache.Stats {
	return c.loader.Cache().Stats()
}

// collectionKey is the username, qualified by the filter set unless it is
// the default one, so differently filtered sets never alias.
func collectionKey(username string, filters []string) string {
	sorted := append([]string(nil), filters...)
	sort.Strings(sorted)

	def := append([]string(nil), recommend.DefaultUserFilters...)
	sort.Strings(def)

	joined := strings.Join(sorted, ",")
	if joined == strings.Join(def, ",") {
		return username
	}
	return username + "|" + joined
}

func (c *CollectionCache) fetch(ctx context.Context, username string, filters []string) (recommend.LikedSet, error) {
	c.logger.Info().Str("username", username).Msg("updating user collection")

	entries, err := c.fetchEntries(ctx, username)
	if err != nil {
		return nil, err
	}

	c.logger.Info().Str("username", username).Int("entries", len(entries)).Msg("found collection entries, processing")

	set := make(recommend.LikedSet, 0, len(entries))
	for _, entry := range entries {
		if !recommend.Matches(entry.Status, filters) {
			metrics.CollectionFiltered.Inc()
			c.logger.Debug().Str("name", entry.Name).Msg("excluding collection entry")
			continue
		}

		details, err := callWithTimeout(ctx, c.cfg.CallTimeout, func(ctx context.Context) (Details, error) {
			return c.source.ItemDetails(ctx, entry.ID)
		})
		if err != nil {
			// Only an item the upstream says does not exist is dropped. Any
			// other failure would leave a partial liked set, which is never
			// stored.
			if !errors.Is(err, ErrNotFound) || isAbort(ctx, err) {
				c.logger.Warn().Err(err).Str("id", entry.ID).Str("username", username).Msg("liked item details unavailable, discarding collection")
				return nil, upstreamError("collection item "+entry.ID, err)
			}
			c.logger.Warn().Err(err).Str("id", entry.ID).Str("name", entry.Name).Msg("dropping liked item unknown upstream")
			continue
		}

		numPlays := entry.NumPlays
		if numPlays < 0 {
			numPlays = 0
		}
		features := details.Features
		if features == nil {
			features = []recommend.Feature{}
		}
		set = append(set, recommend.LikedItem{
			Item: recommend.Item{
				ID:          entry.ID,
				Name:        entry.Name,
				Features:    features,
				Description: details.Description,
				Thumbnail:   details.Thumbnail,
			},
			NumPlays: numPlays,
		})
	}

	if len(set) == 0 {
		return nil, recommend.EmptyCollection(username)
	}
	return set, nil
}

// fetchEntries calls the upstream under the retry policy. An empty
// collection is retried; an unknown user or an upstream failure is not.
func (c *CollectionCache) fetchEntries(ctx context.Context, username string) ([]CollectionEntry, error) {
	var entries []CollectionEntry

	err := c.cfg.Retry.Do(ctx, func(ctx context.Context, attempt int) (bool, error) {
		got, err := callWithTimeout(ctx, c.cfg.CallTimeout, func(ctx context.Context) ([]CollectionEntry, error) {
			return c.source.Collection(ctx, username)
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return false, recommend.UsernameNotFound(username)
			}
			return false, upstreamError("collection", err)
		}

		entries = got
		if len(entries) == 0 {
			if attempt < c.cfg.Retry.Attempts {
				metrics.CollectionRetries.Inc()
				c.logger.Info().
					Str("username", username).
					Dur("delay", c.cfg.Retry.Delay).
					Msg("empty collection response, retrying")
			}
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		if recommend.KindOf(err) == 0 {
			// context ended while waiting between attempts
			return nil, recommend.UpstreamUnavailable("collection", err)
		}
		return nil, err
	}
	return entries, nil
}
