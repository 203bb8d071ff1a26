// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hotpick/internal/metrics"
)

// Engine ranks a hot set against a liked set.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a ranking engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Rank scores every (hot, liked) pair, aggregates per hot item under mode,
// drops hot items the user already likes, and returns at most topN
// suggestions ordered by total affinity descending. Ties keep hot set order.
// topN <= 0 selects the configured default.
func (e *Engine) Rank(hot HotSet, liked LikedSet, mode Mode, topN int) (suggestions []Suggestion, err error) {
	start := time.Now()
	pairs := 0
	defer func() {
		label := string(mode)
		if _, known := strategies[mode]; !known {
			label = "invalid"
		}
		metrics.RecordRank(label, pairs, time.Since(start), err)
	}()

	strat, ok := strategies[mode]
	if !ok {
		return nil, InvalidMode(string(mode))
	}
	if len(liked) == 0 {
		return nil, EmptyLikedSet()
	}
	topN = e.clampTopN(topN)

	likedValues := make([]map[string]struct{}, len(liked))
	for i := range liked {
		likedValues[i] = featureValues(liked[i].Features)
	}
	exclude := e.exclusions(liked)

	suggestions = make([]Suggestion, 0, len(hot))
	grouped := make(map[string]struct{}, len(hot))

	for i := range hot {
		h := &hot[i]
		if exclude.matches(h) {
			e.logger.Debug().Str("id", h.ID).Str("name", h.Name).Msg("hot item already liked, skipping")
			continue
		}
		// Duplicate ids in the hot set collapse onto the first occurrence.
		if _, dup := grouped[h.ID]; dup {
			continue
		}
		grouped[h.ID] = struct{}{}

		s := Suggestion{
			ID:          h.ID,
			Name:        h.Name,
			Thumbnail:   h.Thumbnail,
			Description: h.Description,
		}
		reasons := make([]Reason, 0, len(liked))
		for j := range liked {
			ps := scorePair(h.Features, likedValues[j])
			score := strat.contribution(ps.Affinity, liked[j].NumPlays)
			s.TotalAffinity = strat.reduce(s.TotalAffinity, score)
			reasons = append(reasons, Reason{
				LikedName:      liked[j].Name,
				CommonFeatures: ps.CommonFeatures,
				Score:          score,
			})
			pairs++
		}

		sort.SliceStable(reasons, func(a, b int) bool {
			return reasons[a].Score > reasons[b].Score
		})
		if len(reasons) > strat.reasons {
			reasons = reasons[:strat.reasons]
		}
		s.BecauseYouAlsoLike = reasons

		suggestions = append(suggestions, s)
	}

	sort.SliceStable(suggestions, func(a, b int) bool {
		return suggestions[a].TotalAffinity > suggestions[b].TotalAffinity
	})
	if len(suggestions) > topN {
		suggestions = suggestions[:topN]
	}

	e.logger.Debug().
		Str("mode", string(mode)).
		Int("hot", len(hot)).
		Int("liked", len(liked)).
		Int("pairs", pairs).
		Int("returned", len(suggestions)).
		Dur("latency", time.Since(start)).
		Msg("ranking complete")

	return suggestions, nil
}

// scorePair computes the share of hot's features found in liked.
func scorePair(hot []Feature, liked map[string]struct{}) PairScore {
	if len(hot) == 0 {
		return PairScore{Affinity: 0, CommonFeatures: []string{}}
	}

	common := make([]string, 0, len(hot))
	for _, f := range hot {
		if _, ok := liked[f.Value]; ok {
			common = append(common, f.Value)
		}
	}
	return PairScore{
		Affinity:       float64(len(common)) / float64(len(hot)),
		CommonFeatures: common,
	}
}

func featureValues(features []Feature) map[string]struct{} {
	set := make(map[string]struct{}, len(features))
	for _, f := range features {
		set[f.Value] = struct{}{}
	}
	return set
}

func (e *Engine) clampTopN(topN int) int {
	if topN <= 0 {
		return e.config.DefaultTopN
	}
	if topN > e.config.MaxTopN {
		return e.config.MaxTopN
	}
	return topN
}

// exclusionSet identifies hot items the user already likes.
type exclusionSet struct {
	names map[string]struct{}
	ids   map[string]struct{} // nil unless ExcludeByID
}

func (e *Engine) exclusions(liked LikedSet) exclusionSet {
	ex := exclusionSet{names: make(map[string]struct{}, len(liked))}
	if e.config.ExcludeByID {
		ex.ids = make(map[string]struct{}, len(liked))
	}
	for i := range liked {
		ex.names[liked[i].Name] = struct{}{}
		if ex.ids != nil && liked[i].ID != "" {
			ex.ids[liked[i].ID] = struct{}{}
		}
	}
	return ex
}

func (x exclusionSet) matches(h *Item) bool {
	if _, ok := x.names[h.Name]; ok {
		return true
	}
	if x.ids != nil {
		if _, ok := x.ids[h.ID]; ok {
			return true
		}
	}
	return false
}
