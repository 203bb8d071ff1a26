// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.DefaultTopN != 5 {
		t.Errorf("DefaultTopN = %d, want 5", cfg.DefaultTopN)
	}
	if cfg.DefaultMode != ModeSumWeighted {
		t.Errorf("DefaultMode = %s, want sum_weighted", cfg.DefaultMode)
	}
	if cfg.ExcludeByID {
		t.Error("ExcludeByID should be off by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero top n", func(c *Config) { c.DefaultTopN = 0 }, true},
		{"max below default", func(c *Config) { c.MaxTopN = 2 }, true},
		{"unknown mode", func(c *Config) { c.DefaultMode = "avg" }, true},
		{"max mode", func(c *Config) { c.DefaultMode = ModeMax }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_CloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.DefaultTopN = 9
	if cfg.DefaultTopN == 9 {
		t.Error("Clone shares state with original")
	}
}
