// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all hotpick configuration.
//
// Loading order (koanf v2):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/hotpick/config.yaml)
//  3. Environment variables listed in envMappings
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("invalid configuration")
//	}
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	API        APIConfig        `koanf:"api"`
	Security   SecurityConfig   `koanf:"security"`
	BGG        BGGConfig        `koanf:"bgg"`
	Cache      CacheConfig      `koanf:"cache"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Refresh    RefreshConfig    `koanf:"refresh"`
	Telegram   TelegramConfig   `koanf:"telegram"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// APIConfig holds request defaults for the JSON API.
type APIConfig struct {
	DefaultTopN    int           `koanf:"default_top_n" validate:"gte=1"`
	MaxTopN        int           `koanf:"max_top_n" validate:"gte=1,lte=500"`
	DefaultFormat  string        `koanf:"default_format" validate:"required,suggestformat"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gt=0"`
	RefreshTimeout time.Duration `koanf:"refresh_timeout" validate:"gt=0"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins        []string      `koanf:"cors_origins"`
	CORSMaxAge         int           `koanf:"cors_max_age" validate:"gte=0"`
	RateLimitReqs      int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
	RefreshLimitReqs   int           `koanf:"refresh_limit_reqs" validate:"gte=1"`
	RefreshLimitWindow time.Duration `koanf:"refresh_limit_window" validate:"gt=0"`
}

// BGGConfig holds BoardGameGeek XML API2 client settings.
type BGGConfig struct {
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	Token             string        `koanf:"token"`
	UserAgent         string        `koanf:"user_agent" validate:"required"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	RetryMax          int           `koanf:"retry_max" validate:"gte=0,lte=10"`
	RetryWaitMin      time.Duration `koanf:"retry_wait_min" validate:"gt=0"`
	RetryWaitMax      time.Duration `koanf:"retry_wait_max" validate:"gt=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Burst             int           `koanf:"burst" validate:"gte=1"`
	BreakerTimeout    time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// CacheConfig holds the hot set and collection cache settings.
type CacheConfig struct {
	HotTTL                  time.Duration `koanf:"hot_ttl" validate:"gt=0"`
	HotMinSuccessRatio      float64       `koanf:"hot_min_success_ratio" validate:"gt=0,lte=1"`
	CollectionTTL           time.Duration `koanf:"collection_ttl" validate:"gt=0"`
	CollectionCapacity      int           `koanf:"collection_capacity" validate:"gte=1"`
	CollectionRetryAttempts int           `koanf:"collection_retry_attempts" validate:"gte=1,lte=10"`
	CollectionRetryDelay    time.Duration `koanf:"collection_retry_delay" validate:"gte=0"`
	CallTimeout             time.Duration `koanf:"call_timeout" validate:"gt=0"`
}

// RecommendConfig holds ranking settings.
type RecommendConfig struct {
	DefaultTopN int      `koanf:"default_top_n" validate:"gte=1"`
	MaxTopN     int      `koanf:"max_top_n" validate:"gte=1"`
	Mode        string   `koanf:"mode" validate:"oneof=max sum_weighted"`
	ExcludeByID bool     `koanf:"exclude_by_id"`
	Filters     []string `koanf:"filters" validate:"min=1,dive,collectionfilter"`
	LinkBaseURL string   `koanf:"link_base_url" validate:"required,url"`
}

// RefreshConfig holds the periodic hot set refresh settings.
type RefreshConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Schedule string        `koanf:"schedule" validate:"required"`
	WarmUp   bool          `koanf:"warm_up"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
}

// TelegramConfig holds chat front end settings. The bot runs only when
// Token is set.
type TelegramConfig struct {
	Token            string        `koanf:"token"`
	APIEndpoint      string        `koanf:"api_endpoint"`
	PollTimeout      int           `koanf:"poll_timeout" validate:"gte=1,lte=600"`
	Concurrency      int           `koanf:"concurrency" validate:"gte=1,lte=256"`
	TopN             int           `koanf:"top_n" validate:"gte=1,lte=20"`
	MaxSearchButtons int           `koanf:"max_search_buttons" validate:"gte=1,lte=100"`
	RequestTimeout   time.Duration `koanf:"request_timeout" validate:"gt=0"`
	ConversationTTL  time.Duration `koanf:"conversation_ttl" validate:"gt=0"`
	MaxConversations int           `koanf:"max_conversations" validate:"gte=1"`
}

// Enabled reports whether a bot token is configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

// SupervisorConfig holds suture restart policy settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold" validate:"gt=0"`
	FailureDecay     float64       `koanf:"failure_decay" validate:"gt=0"`
	FailureBackoff   time.Duration `koanf:"failure_backoff" validate:"gt=0"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// String summarizes the configuration for startup logs with secrets
// removed.
func (c *Config) String() string {
	return fmt.Sprintf("server=%s api=%t bgg=%s telegram=%t refresh=%q mode=%s log=%s/%s",
		c.Server.Addr(), c.Server.Enabled, c.BGG.BaseURL, c.Telegram.Enabled(),
		c.Refresh.Schedule, c.Recommend.Mode, c.Logging.Level, c.Logging.Format)
}
