// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"fmt"
)

// Config contains the ranking engine settings.
type Config struct {
	// DefaultTopN is used when a caller passes topN <= 0.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps caller-supplied topN values.
	MaxTopN int `json:"max_top_n"`

	// DefaultMode is the aggregation mode used by the suggestion service.
	DefaultMode Mode `json:"default_mode"`

	// ExcludeByID additionally drops hot items whose id matches a liked item.
	// Name-based exclusion always applies.
	ExcludeByID bool `json:"exclude_by_id"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN: 5,
		MaxTopN:     50,
		DefaultMode: ModeSumWeighted,
		ExcludeByID: false,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n must be >= default_top_n, got %d < %d", c.MaxTopN, c.DefaultTopN)
	}
	if _, err := ParseMode(string(c.DefaultMode)); err != nil {
		return fmt.Errorf("default_mode: %w", err)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
