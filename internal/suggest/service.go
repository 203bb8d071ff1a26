// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/catalog"
	"github.com/tomtom215/hotpick/internal/recommend"
)

// HotSource provides the current hot set.
type HotSource interface {
	Load(ctx context.Context) (recommend.HotSet, error)
	Refresh(ctx context.Context) (recommend.HotSet, error)
}

// LikedSource provides a user's liked set.
type LikedSource interface {
	Load(ctx context.Context, username string, filters []string) (recommend.LikedSet, error)
}

// Catalog resolves single items and search queries.
type Catalog interface {
	catalog.Searcher
	catalog.DetailFetcher
}

// Config configures the suggestion service.
type Config struct {
	// BaseURL prefixes item ids in text output.
	BaseURL string

	// Filters select the liked part of a user's collection.
	Filters []string

	// CallTimeout bounds direct catalog calls (search, single item).
	CallTimeout time.Duration
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     recommend.DefaultBaseURL,
		Filters:     append([]string(nil), recommend.DefaultUserFilters...),
		CallTimeout: 30 * time.Second,
	}
}

// Service is the entry point used by the HTTP API and the Telegram bot.
type Service struct {
	engine  *recommend.Engine
	hot     HotSource
	liked   LikedSource
	catalog Catalog
	cfg     Config
	logger  zerolog.Logger
}

// NewService wires the engine to its data sources.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(engine *recommend.Engine, hot HotSource, liked LikedSource, cat Catalog, cfg Config, logger zerolog.Logger) (*Service, error) {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if len(cfg.Filters) == 0 {
		cfg.Filters = def.Filters
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = def.CallTimeout
	}
	if err := recommend.ValidateFilters(cfg.Filters); err != nil {
		return nil, fmt.Errorf("invalid suggestion filters: %w", err)
	}

	return &Service{
		engine:  engine,
		hot:     hot,
		liked:   liked,
		catalog: cat,
		cfg:     cfg,
		logger:  logger.With().Str("component", "suggest").Logger(),
	}, nil
}

// RankAgainstItem ranks the hot set against a single game, as if the user
// liked only that game and had never played it.
func (s *Service) RankAgainstItem(ctx context.Context, itemID string, topN int, format string) (*recommend.Result, error) {
	if _, err := recommend.ParseFormat(format); err != nil {
		return nil, err
	}

	details, err := s.itemDetails(ctx, itemID)
	if err != nil {
		return nil, err
	}

	liked := recommend.Single(recommend.Item{
		ID:          itemID,
		Name:        details.Name,
		Features:    details.Features,
		Description: details.Description,
		Thumbnail:   details.Thumbnail,
	})

	s.logger.Debug().Str("item_id", itemID).Str("name", details.Name).Msg("ranking against item")
	return s.rank(ctx, liked, topN, format)
}

// RankAgainstUser ranks the hot set against the liked part of a user's
// collection.
func (s *Service) RankAgainstUser(ctx context.Context, username string, topN int, format string) (*recommend.Result, error) {
	if _, err := recommend.ParseFormat(format); err != nil {
		return nil, err
	}

	liked, err := s.liked.Load(ctx, username, s.cfg.Filters)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("username", username).Int("liked", len(liked)).Msg("ranking against user")
	return s.rank(ctx, liked, topN, format)
}

// RefreshHotSet forces a hot set reload and returns its size.
func (s *Service) RefreshHotSet(ctx context.Context) (int, error) {
	set, err := s.hot.Refresh(ctx)
	if err != nil {
		return 0, err
	}
	return len(set), nil
}

// Search resolves a free-text query to candidate games.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, recommend.NoSearchResults(query)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	found, err := s.catalog.Search(ctx, query)
	if err != nil {
		if recommend.KindOf(err) != 0 {
			return nil, err
		}
		return nil, recommend.UpstreamUnavailable("search", err)
	}
	if len(found) == 0 {
		return nil, recommend.NoSearchResults(query)
	}
	return found, nil
}

func (s *Service) rank(ctx context.Context, liked recommend.LikedSet, topN int, format string) (*recommend.Result, error) {
	hot, err := s.hot.Load(ctx)
	if err != nil {
		return nil, err
	}

	suggestions, err := s.engine.Rank(hot, liked, s.engine.Config().DefaultMode, topN)
	if err != nil {
		return nil, err
	}
	return recommend.Render(suggestions, format, s.cfg.BaseURL)
}

func (s *Service) itemDetails(ctx context.Context, itemID string) (catalog.Details, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	d, err := s.catalog.ItemDetails(ctx, itemID)
	switch {
	case err == nil:
		if d.Name == "" {
			d.Name = itemID
		}
		return d, nil
	case errors.Is(err, catalog.ErrNotFound):
		return catalog.Details{}, recommend.NoSearchResults(itemID)
	case recommend.KindOf(err) != 0:
		return catalog.Details{}, err
	default:
		return catalog.Details{}, recommend.UpstreamUnavailable("thing "+itemID, err)
	}
}
