// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package catalog caches the two collections the ranking engine works on:
// the hot set (one slot, refreshed hourly) and per-user liked sets (ten
// users, one hour each). It also defines the upstream collaborator
// interfaces that internal/bgg implements.
package catalog
