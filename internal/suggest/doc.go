// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package suggest exposes the three ranking operations (against one game,
// against a user, refresh the hot set) plus catalog search, composing the
// caches, the ranking engine and the formatter.
package suggest
