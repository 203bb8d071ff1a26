// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tomtom215/hotpick/internal/recommend"
)

// fakeUpstream implements Client for testing.
type fakeUpstream struct {
	mu sync.Mutex

	hot        []HotEntry
	hotErr     error
	details    map[string]Details
	detailErrs map[string]error

	// collections are returned in order, one per call; the last repeats.
	collections   [][]CollectionEntry
	collectionErr error

	hotCalls        atomic.Int32
	detailCalls     atomic.Int32
	collectionCalls atomic.Int32

	// block, when set, holds ItemDetails until closed.
	block chan struct{}
}

func (f *fakeUpstream) Search(ctx context.Context, query string) ([]Candidate, error) {
	return nil, nil
}

func (f *fakeUpstream) HotItems(ctx context.Context) ([]HotEntry, error) {
	f.hotCalls.Add(1)
	if f.hotErr != nil {
		return nil, f.hotErr
	}
	return f.hot, nil
}

func (f *fakeUpstream) ItemDetails(ctx context.Context, id string) (Details, error) {
	f.detailCalls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return Details{}, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.detailErrs[id]; ok {
		return Details{}, err
	}
	d, ok := f.details[id]
	if !ok {
		return Details{}, fmt.Errorf("thing %s: %w", id, ErrNotFound)
	}
	return d, nil
}

func (f *fakeUpstream) Collection(ctx context.Context, username string) ([]CollectionEntry, error) {
	n := int(f.collectionCalls.Add(1))
	if f.collectionErr != nil {
		return nil, f.collectionErr
	}
	if len(f.collections) == 0 {
		return nil, nil
	}
	if n > len(f.collections) {
		n = len(f.collections)
	}
	return f.collections[n-1], nil
}

func detailsFor(values ...string) Details {
	fs := make([]recommend.Feature, 0, len(values))
	for _, v := range values {
		fs = append(fs, recommend.Feature{Type: "boardgamecategory", Value: v})
	}
	return Details{Features: fs, Description: "desc", Thumbnail: "thumb"}
}

func newHotFake(n int) *fakeUpstream {
	f := &fakeUpstream{details: map[string]Details{}, detailErrs: map[string]error{}}
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("%d", i)
		f.hot = append(f.hot, HotEntry{ID: id, Name: "Game " + id, Rank: i})
		f.details[id] = detailsFor("x")
	}
	return f
}
