// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations in priority order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hotpick/config.yaml",
	"/etc/hotpick/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults. File and environment
// values are layered on top.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Enabled:         true,
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    11 * time.Minute, // forced refreshes run up to api.refresh_timeout
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		API: APIConfig{
			DefaultTopN:    5,
			MaxTopN:        50,
			DefaultFormat:  "structured",
			RequestTimeout: 2 * time.Minute,
			RefreshTimeout: 10 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:        []string{},
			CORSMaxAge:         86400,
			RateLimitReqs:      60,
			RateLimitWindow:    time.Minute,
			RateLimitDisabled:  false,
			RefreshLimitReqs:   2,
			RefreshLimitWindow: time.Minute,
		},
		BGG: BGGConfig{
			BaseURL:           "https://boardgamegeek.com/xmlapi2",
			Token:             "",
			UserAgent:         "hotpick/1.0 (+https://github.com/tomtom215/hotpick)",
			Timeout:           30 * time.Second,
			RetryMax:          3,
			RetryWaitMin:      time.Second,
			RetryWaitMax:      10 * time.Second,
			RequestsPerSecond: 2,
			Burst:             4,
			BreakerTimeout:    time.Minute,
		},
		Cache: CacheConfig{
			HotTTL:                  time.Hour,
			HotMinSuccessRatio:      0.8,
			CollectionTTL:           time.Hour,
			CollectionCapacity:      10,
			CollectionRetryAttempts: 2,
			CollectionRetryDelay:    5 * time.Second,
			CallTimeout:             30 * time.Second,
		},
		Recommend: RecommendConfig{
			DefaultTopN: 5,
			MaxTopN:     50,
			Mode:        "sum_weighted",
			ExcludeByID: false,
			Filters:     []string{"own", "want", "wanttoplay", "wanttobuy", "wishlist", "preordered"},
			LinkBaseURL: "https://boardgamegeek.com/boardgame",
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Schedule: "@every 60m",
			WarmUp:   true,
			Timeout:  10 * time.Minute,
		},
		Telegram: TelegramConfig{
			Token:            "",
			APIEndpoint:      "",
			PollTimeout:      60,
			Concurrency:      8,
			TopN:             5,
			MaxSearchButtons: 20,
			RequestTimeout:   3 * time.Minute,
			ConversationTTL:  30 * time.Minute,
			MaxConversations: 10000,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from defaults, the optional config file
// and the environment, then validates it.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns CONFIG_PATH if it exists, else the first default
// path that exists, else "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are split on commas when they arrive as a single string
// from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.filters",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"http_enabled":          "server.enabled",
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",

	"api_default_top_n":   "api.default_top_n",
	"api_max_top_n":       "api.max_top_n",
	"api_default_format":  "api.default_format",
	"api_request_timeout": "api.request_timeout",
	"api_refresh_timeout": "api.refresh_timeout",

	"cors_origins":         "security.cors_origins",
	"cors_max_age":         "security.cors_max_age",
	"rate_limit_requests":  "security.rate_limit_reqs",
	"rate_limit_window":    "security.rate_limit_window",
	"disable_rate_limit":   "security.rate_limit_disabled",
	"refresh_limit_reqs":   "security.refresh_limit_reqs",
	"refresh_limit_window": "security.refresh_limit_window",

	"bgg_base_url":            "bgg.base_url",
	"bgg_token":               "bgg.token",
	"bgg_user_agent":          "bgg.user_agent",
	"bgg_timeout":             "bgg.timeout",
	"bgg_retry_max":           "bgg.retry_max",
	"bgg_retry_wait_min":      "bgg.retry_wait_min",
	"bgg_retry_wait_max":      "bgg.retry_wait_max",
	"bgg_requests_per_second": "bgg.requests_per_second",
	"bgg_burst":               "bgg.burst",
	"bgg_breaker_timeout":     "bgg.breaker_timeout",

	"hot_cache_ttl":             "cache.hot_ttl",
	"hot_min_success_ratio":     "cache.hot_min_success_ratio",
	"collection_cache_ttl":      "cache.collection_ttl",
	"collection_cache_capacity": "cache.collection_capacity",
	"collection_retry_attempts": "cache.collection_retry_attempts",
	"collection_retry_delay":    "cache.collection_retry_delay",
	"upstream_call_timeout":     "cache.call_timeout",

	"recommend_default_top_n": "recommend.default_top_n",
	"recommend_max_top_n":     "recommend.max_top_n",
	"recommend_mode":          "recommend.mode",
	"recommend_exclude_by_id": "recommend.exclude_by_id",
	"collection_filters":      "recommend.filters",
	"link_base_url":           "recommend.link_base_url",

	"hot_refresh_enabled":  "refresh.enabled",
	"hot_refresh_schedule": "refresh.schedule",
	"hot_refresh_warm_up":  "refresh.warm_up",
	"hot_refresh_timeout":  "refresh.timeout",

	"telegram_token":              "telegram.token",
	"telegram_api_endpoint":       "telegram.api_endpoint",
	"telegram_poll_timeout":       "telegram.poll_timeout",
	"telegram_concurrency":        "telegram.concurrency",
	"telegram_top_n":              "telegram.top_n",
	"telegram_max_search_buttons": "telegram.max_search_buttons",
	"telegram_request_timeout":    "telegram.request_timeout",
	"telegram_conversation_ttl":   "telegram.conversation_ttl",
	"telegram_max_conversations":  "telegram.max_conversations",

	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to its config path.
// Returning "" makes koanf skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
