// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/hotpick/internal/recommend"
)

// ErrNotFound is returned by collaborators when the upstream explicitly
// reports that a user or item does not exist.
var ErrNotFound = errors.New("not found")

// Candidate is one catalog search hit.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year string `json:"year,omitempty"`
}

// HotEntry is one row of the upstream hotness list.
type HotEntry struct {
	ID        string
	Name      string
	Rank      int
	Thumbnail string
}

// Details is the feature list and display fields of one item.
type Details struct {
	Name        string
	Features    []recommend.Feature
	Description string
	Thumbnail   string
}

// CollectionEntry is one raw row of a user's collection.
type CollectionEntry struct {
	ID       string
	Name     string
	NumPlays int

	// Status maps status flags (own, wishlist, ...) to their value.
	Status map[string]bool
}

// Searcher resolves a free-text query to candidates.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Candidate, error)
}

// HotLister returns the current hotness list in trending order.
type HotLister interface {
	HotItems(ctx context.Context) ([]HotEntry, error)
}

// DetailFetcher resolves an item id to its features and display fields.
type DetailFetcher interface {
	ItemDetails(ctx context.Context, id string) (Details, error)
}

// CollectionFetcher returns a user's raw collection. It returns an error
// wrapping ErrNotFound for unknown users and an empty slice, not an error,
// when the upstream has not prepared the collection yet.
type CollectionFetcher interface {
	Collection(ctx context.Context, username string) ([]CollectionEntry, error)
}

// Client is the full upstream catalog surface.
type Client interface {
	Searcher
	HotLister
	DetailFetcher
	CollectionFetcher
}

// upstreamError classifies a collaborator failure. Domain errors pass
// through; anything else becomes UpstreamUnavailable.
func upstreamError(op string, err error) error {
	if recommend.KindOf(err) != 0 {
		return err
	}
	return recommend.UpstreamUnavailable(op, err)
}

// isAbort reports whether err ends the whole operation rather than a single
// item: the caller gave up or a per-call timeout fired.
func isAbort(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// callWithTimeout bounds one collaborator call.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(callCtx)
}
