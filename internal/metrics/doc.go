// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry through promauto and are
exposed by the API server at /metrics:

	curl http://localhost:8080/metrics

# Available Metrics

Caches (label cache="hot"|"collection"):
  - hotpick_cache_hits_total, hotpick_cache_misses_total
  - hotpick_cache_entries
  - hotpick_cache_evictions_total (reason="expired"|"capacity")

Upstream:
  - hotpick_upstream_request_duration_seconds{endpoint}
  - hotpick_upstream_request_errors_total{endpoint,error_type}
  - hotpick_circuit_breaker_* {name}

Ranking and refresh:
  - hotpick_rank_requests_total{mode,status}, hotpick_rank_duration_seconds{mode}
  - hotpick_hot_refresh_total{outcome}, hotpick_hot_set_items

Front ends:
  - hotpick_api_requests_total{method,endpoint,status_code}
  - hotpick_telegram_updates_total{kind}
*/
package metrics
