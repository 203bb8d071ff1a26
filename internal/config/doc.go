// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
Package config loads and validates hotpick configuration.

# Sources

Values are layered with koanf v2, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, ./config.yaml, or /etc/hotpick/config.yaml
 3. Environment variables from an explicit mapping table

Unlisted environment variables are ignored. Comma-separated values are
accepted for list settings (CORS_ORIGINS, COLLECTION_FILTERS). Durations
use Go syntax ("90m", "5s").

# Common Environment Variables

Front ends:
  - HTTP_ENABLED, HTTP_HOST, HTTP_PORT (default 8080)
  - TELEGRAM_TOKEN: enables the Telegram bot
  - TELEGRAM_API_ENDPOINT: alternate Bot API server ("https://host/bot%s/%s")

BoardGameGeek:
  - BGG_BASE_URL (default https://boardgamegeek.com/xmlapi2)
  - BGG_TOKEN: optional application token
  - BGG_REQUESTS_PER_SECOND, BGG_RETRY_MAX, BGG_BREAKER_TIMEOUT

Caches and ranking:
  - HOT_CACHE_TTL, HOT_MIN_SUCCESS_RATIO
  - COLLECTION_CACHE_TTL, COLLECTION_CACHE_CAPACITY, COLLECTION_FILTERS
  - RECOMMEND_MODE (max or sum_weighted), RECOMMEND_EXCLUDE_BY_ID
  - HOT_REFRESH_SCHEDULE (cron spec, default "@every 60m")

Logging:
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

# Validation

Validate applies go-playground/validator struct tags (including the
collectionfilter and suggestformat tags from the validation package),
then cross-field rules: top-N defaults within their caps, a parseable
refresh schedule, and at least one enabled front end.
*/
package config
