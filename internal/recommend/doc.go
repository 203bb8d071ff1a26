// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package recommend ranks trending board games against the games a user
// already likes.
//
// # Scoring
//
// Every hot item is paired with every liked item. A pair scores the share of
// the hot item's feature values that also appear on the liked item:
//
//	affinity = |hot features found in liked| / |hot features|
//
// The denominator is always the hot item's feature count, so the score
// answers "how much of this trending game matches something you like".
//
// # Modes
//
//   - max: total is the best affinity; one reason is kept
//   - sum_weighted: each affinity is weighted by (numplays + 0.5) and summed;
//     three reasons are kept
//
// Both modes share the join, grouping and sorting pipeline and differ only in
// the strategy table in mode.go.
//
// # Ordering
//
// Hot items whose name equals a liked item's name are dropped. Suggestions are
// stable-sorted by total affinity, so ties keep hot set (trending) order.
// Zero-score suggestions are kept and sort last.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	suggestions, err := engine.Rank(hot, liked, recommend.ModeSumWeighted, 5)
//	res, err := recommend.Render(suggestions, "markdown", recommend.DefaultBaseURL)
//
// # Errors
//
// Domain failures are *Error values with a Kind and a user-facing Message.
// Use errors.Is with the Err* sentinels and UserMessage for display.
package recommend
