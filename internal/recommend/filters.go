// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

// AllowedFilters is the collection status vocabulary.
var AllowedFilters = []string{
	"own", "prevowned", "fortrade", "want", "wanttoplay", "wanttobuy", "wishlist", "preordered",
}

// DefaultUserFilters are the statuses that count as "liked" when ranking
// against a user's collection.
var DefaultUserFilters = []string{
	"own", "want", "wanttoplay", "wanttobuy", "wishlist", "preordered",
}

// ValidateFilters checks filters is a non-empty subset of AllowedFilters.
func ValidateFilters(filters []string) error {
	if len(filters) == 0 {
		return &Error{Kind: KindInvalidFilter, Message: "at least one collection filter is required"}
	}

	allowed := make(map[string]struct{}, len(AllowedFilters))
	for _, f := range AllowedFilters {
		allowed[f] = struct{}{}
	}

	var bad []string
	seen := make(map[string]struct{})
	for _, f := range filters {
		if _, ok := allowed[f]; ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		bad = append(bad, f)
	}
	if len(bad) > 0 {
		return InvalidFilter(bad)
	}
	return nil
}

// Matches reports whether any selected filter is set in status.
func Matches(status map[string]bool, filters []string) bool {
	for _, f := range filters {
		if status[f] {
			return true
		}
	}
	return false
}
