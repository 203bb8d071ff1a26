// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

// Feature is a taxonomy tag attached to a board game (category, mechanic,
// family, designer, ...). Value is the comparison key.
type Feature struct {
	// Type is the link type, e.g. "boardgamemechanic".
	Type string `json:"type"`

	// ID is the upstream identifier of the tag.
	ID string `json:"id"`

	// Value is the tag label and the key used for overlap scoring.
	Value string `json:"value"`
}

// Item is a board game with its feature list.
// Identity is ID; Name is used for display and for self-exclusion.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Features    []Feature `json:"features"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Description string    `json:"description,omitempty"`
}

// LikedItem is an item the user has marked in their collection, or a single
// item chosen ad hoc (NumPlays 0).
type LikedItem struct {
	Item

	// NumPlays is the number of logged plays, never negative.
	NumPlays int `json:"numplays"`
}

// HotSet is the current trending collection, in trending order.
type HotSet []Item

// LikedSet is the set of games one user likes, in collection order.
type LikedSet []LikedItem

// PairScore is the overlap between one hot item and one liked item.
type PairScore struct {
	// Affinity is |CommonFeatures| / |hot features|, in [0, 1].
	Affinity float64

	// CommonFeatures lists the hot item's feature values found in the liked
	// item, in hot item order with duplicates preserved.
	CommonFeatures []string
}

// Reason is one "because you also like" entry of a suggestion.
type Reason struct {
	LikedName      string   `json:"liked_name"`
	CommonFeatures []string `json:"common_features"`
	Score          float64  `json:"score"`
}

// Suggestion is a ranked hot item.
type Suggestion struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
	Description        string   `json:"description,omitempty"`
	TotalAffinity      float64  `json:"total_affinity"`
	BecauseYouAlsoLike []Reason `json:"because_you_also_like"`
}

// Single builds the one-element liked set used when ranking against a
// single chosen game.
func Single(item Item) LikedSet {
	return LikedSet{{Item: item, NumPlays: 0}}
}
