// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package api serves the suggestion service over HTTP with chi.
//
// Routes:
//
//	GET  /health
//	GET  /metrics
//	GET  /api/v1/suggestions/item/{itemID}?top_n=&format=
//	GET  /api/v1/suggestions/user/{username}?top_n=&format=
//	GET  /api/v1/search?q=
//	POST /api/v1/hot/refresh
//
// Every JSON response uses the APIResponse envelope. Domain errors map to
// statuses as follows:
//
//	invalid_filter, invalid_mode, invalid_format  400
//	username_not_found, no_search_results         404
//	empty_collection, empty_liked_set             422
//	upstream_unavailable                          503 (with Retry-After)
//
// Tabular suggestions are written as CSV when the request accepts text/csv.
package api
