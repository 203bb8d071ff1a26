// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

/*
Package cache provides a bounded in-memory TTL cache and a read-through loader.

# Overview

TTL is a generic key/value store with:
  - Thread-safe concurrent access (sync.RWMutex)
  - Lazy expiration: an entry is absent once now-insertedAt >= ttl
  - A maximum entry count; inserting a new key at capacity evicts the
    least-recently-inserted entry
  - Prometheus hit/miss/eviction counters labelled with the cache name

Loader adds at-most-one concurrent load per key (golang.org/x/sync/singleflight).
A failed load never writes the cache.

# Usage Example

	hot := cache.NewLoader(cache.NewTTL[recommend.HotSet]("hot", 1, time.Hour))

	set, cached, err := hot.Get(ctx, "hot_boardgames", func(ctx context.Context) (recommend.HotSet, error) {
	    return fetchHotSet(ctx)
	})

# Thread Safety

All TTL methods are safe for concurrent use. Values are returned as stored;
callers must treat them as immutable snapshots and replace rather than mutate.
*/
package cache
