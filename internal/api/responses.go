// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package api

import "time"

// APIResponse is the envelope every JSON endpoint returns.
//
// Status is "success" with Data set, or "error" with Error set.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the machine-readable error body.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuggestionsData is the payload of both suggestion endpoints.
type SuggestionsData struct {
	Query  string      `json:"query"`
	Count  int         `json:"count"`
	Result interface{} `json:"result"`
}

// RefreshData is the payload of the hot refresh endpoint.
type RefreshData struct {
	Items int `json:"items"`
}

// HealthData is the payload of the health endpoint.
type HealthData struct {
	Status        string                 `json:"status"`
	Version       string                 `json:"version"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Upstream      map[string]string      `json:"upstream,omitempty"`
	Caches        map[string]CacheHealth `json:"caches,omitempty"`
	Refresh       *RefreshHealth         `json:"refresh,omitempty"`
}

// CacheHealth is one cache's counters.
type CacheHealth struct {
	Entries   int64   `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// RefreshHealth is the periodic hot refresh counters.
type RefreshHealth struct {
	Runs     int64 `json:"runs"`
	Failures int64 `json:"failures"`
}
