// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "Port"},
		{"bad format", func(c *Config) { c.API.DefaultFormat = "yaml" }, "DefaultFormat"},
		{"format alias", func(c *Config) { c.API.DefaultFormat = "markdown" }, ""},
		{"bad mode", func(c *Config) { c.Recommend.Mode = "avg" }, "Mode"},
		{"unknown filter", func(c *Config) { c.Recommend.Filters = []string{"own", "played"} }, "Filters"},
		{"empty filters", func(c *Config) { c.Recommend.Filters = nil }, "Filters"},
		{"duplicate filter", func(c *Config) { c.Recommend.Filters = []string{"own", "own"} }, "twice"},
		{"zero hot ttl", func(c *Config) { c.Cache.HotTTL = 0 }, "HotTTL"},
		{"success ratio above one", func(c *Config) { c.Cache.HotMinSuccessRatio = 1.5 }, "HotMinSuccessRatio"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "Level"},
		{"default top n above max", func(c *Config) { c.API.DefaultTopN = 60 }, "API_DEFAULT_TOP_N"},
		{"api max above engine max", func(c *Config) {
			c.API.MaxTopN = 100
		}, "API_MAX_TOP_N"},
		{"retry waits inverted", func(c *Config) {
			c.BGG.RetryWaitMin = time.Minute
			c.BGG.RetryWaitMax = time.Second
		}, "BGG_RETRY_WAIT_MIN"},
		{"bgg url scheme", func(c *Config) { c.BGG.BaseURL = "ftp://boardgamegeek.com/xmlapi2" }, "BGG_BASE_URL"},
		{"bad schedule", func(c *Config) { c.Refresh.Schedule = "hourly-ish" }, "HOT_REFRESH_SCHEDULE"},
		{"bad schedule ignored when disabled", func(c *Config) {
			c.Refresh.Enabled = false
			c.Refresh.Schedule = "hourly-ish"
		}, ""},
		{"no front end", func(c *Config) { c.Server.Enabled = false }, "nothing to serve"},
		{"telegram only", func(c *Config) {
			c.Server.Enabled = false
			c.Telegram.Token = "123:abc"
		}, ""},
		{"telegram endpoint placeholders", func(c *Config) {
			c.Telegram.Token = "123:abc"
			c.Telegram.APIEndpoint = "https://tg.example.com/bot/%s"
		}, "TELEGRAM_API_ENDPOINT"},
		{"telegram endpoint ok", func(c *Config) {
			c.Telegram.Token = "123:abc"
			c.Telegram.APIEndpoint = "https://tg.example.com/bot%s/%s"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8081}
	if got := s.Addr(); got != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestConfigStringHidesSecrets(t *testing.T) {
	cfg := defaultConfig()
	cfg.Telegram.Token = "123456:super-secret-token"
	cfg.BGG.Token = "bgg-secret"

	s := cfg.String()
	if strings.Contains(s, "super-secret") || strings.Contains(s, "bgg-secret") {
		t.Errorf("String() leaks a secret: %s", s)
	}
	if !strings.Contains(s, "telegram=true") {
		t.Errorf("String() = %s, want telegram=true", s)
	}
}
