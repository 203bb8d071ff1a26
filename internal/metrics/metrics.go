// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package metrics

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - TTL caches (hot set, collections)
// - BoardGameGeek upstream calls and the circuit breaker in front of them
// - Ranking requests
// - Hot set refreshes
// - HTTP API and Telegram front ends

var (
	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"}, // "hot", "collection"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hotpick_cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache", "reason"}, // reason: "expired", "capacity"
	)

	// Upstream (BoardGameGeek) Metrics
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotpick_upstream_request_duration_seconds",
			Help:    "Duration of BoardGameGeek API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	UpstreamRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_upstream_request_errors_total",
			Help: "Total number of failed BoardGameGeek API requests",
		},
		[]string{"endpoint", "error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hotpick_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hotpick_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Ranking Metrics
	RankRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_rank_requests_total",
			Help: "Total number of ranking computations",
		},
		[]string{"mode", "status"}, // status: "success", "error"
	)

	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotpick_rank_duration_seconds",
			Help:    "Duration of a ranking computation in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"mode"},
	)

	RankPairsScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hotpick_rank_pairs_scored",
			Help:    "Number of (hot, liked) pairs scored per ranking",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	// Hot Set Refresh Metrics
	HotRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_hot_refresh_total",
			Help: "Total number of hot set refresh attempts",
		},
		[]string{"outcome"}, // "committed", "rejected", "error"
	)

	HotRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hotpick_hot_refresh_duration_seconds",
			Help:    "Duration of hot set refreshes in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	HotSetItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hotpick_hot_set_items",
			Help: "Number of items in the last committed hot set",
		},
	)

	HotRefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hotpick_hot_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last committed hot set refresh",
		},
	)

	// Collection Metrics
	CollectionRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotpick_collection_retries_total",
			Help: "Total number of collection fetch retries after an empty response",
		},
	)

	CollectionFiltered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotpick_collection_entries_filtered_total",
			Help: "Total number of collection entries excluded by status filters",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hotpick_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hotpick_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Telegram Metrics
	TelegramUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotpick_telegram_updates_total",
			Help: "Total number of Telegram updates handled",
		},
		[]string{"kind"}, // "command", "text", "callback", "ignored"
	)

	TelegramSendErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotpick_telegram_send_errors_total",
			Help: "Total number of failed Telegram sends",
		},
	)
)

// RecordUpstreamRequest records a BoardGameGeek request metric
func RecordUpstreamRequest(endpoint string, duration time.Duration, err error) {
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	if err != nil {
		UpstreamRequestErrors.WithLabelValues(endpoint, classifyError(err)).Inc()
	}
}

// RecordRank records a ranking computation
func RecordRank(mode string, pairs int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	RankRequests.WithLabelValues(mode, status).Inc()
	RankDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err == nil {
		RankPairsScored.Observe(float64(pairs))
	}
}

// RecordHotRefresh records the outcome of a hot set refresh. items is the
// size of the committed set and is ignored unless outcome is "committed".
func RecordHotRefresh(outcome string, items int, duration time.Duration) {
	HotRefreshTotal.WithLabelValues(outcome).Inc()
	HotRefreshDuration.Observe(duration.Seconds())
	if outcome == "committed" {
		HotSetItems.Set(float64(items))
		HotRefreshLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// classifyError maps an error to a low-cardinality label value.
func classifyError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		var st interface{ StatusCode() int }
		if errors.As(err, &st) {
			return "http_" + strconv.Itoa(st.StatusCode())
		}
		return "other"
	}
}
