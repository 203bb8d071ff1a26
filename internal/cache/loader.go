// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultFlightTimeout bounds a load once it no longer belongs to any one
// caller.
const DefaultFlightTimeout = 10 * time.Minute

// LoadFunc produces the value for a key on a cache miss.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	flightTimeout time.Duration
}

// WithFlightTimeout overrides DefaultFlightTimeout.
func WithFlightTimeout(d time.Duration) LoaderOption {
	return func(o *loaderOptions) {
		o.flightTimeout = d
	}
}

// Loader puts a read-through layer with at-most-one concurrent load per key
// in front of a TTL cache.
//
// Concurrent callers asking for the same missing key share a single LoadFunc
// execution and its result. The load runs detached from the caller that
// started it, bounded by the flight timeout, so a caller that gives up only
// stops waiting and never fails the others. A failed load writes nothing,
// so the previous state of the cache (usually: absent) is what the next
// caller sees.
type Loader[V any] struct {
	cache         *TTL[V]
	group         singleflight.Group
	flightTimeout time.Duration
}

// NewLoader wraps c.
func NewLoader[V any](c *TTL[V], opts ...LoaderOption) *Loader[V] {
	o := loaderOptions{flightTimeout: DefaultFlightTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.flightTimeout <= 0 {
		o.flightTimeout = DefaultFlightTimeout
	}
	return &Loader[V]{cache: c, flightTimeout: o.flightTimeout}
}

// Cache returns the underlying TTL cache.
func (l *Loader[V]) Cache() *TTL[V] {
	return l.cache
}

// Get returns the cached value for key or loads it through fn.
// The bool result reports whether the value came from the cache.
func (l *Loader[V]) Get(ctx context.Context, key string, fn LoadFunc[V]) (V, bool, error) {
	if v, ok := l.cache.Get(key); ok {
		return v, true, nil
	}

	v, err := l.load(ctx, key, fn, false)
	return v, false, err
}

// Reload runs fn for key regardless of freshness and stores the result.
// A reload already in flight for the same key is joined rather than repeated.
func (l *Loader[V]) Reload(ctx context.Context, key string, fn LoadFunc[V]) (V, error) {
	return l.load(ctx, key, fn, true)
}

// load executes fn under the singleflight group and waits for the result
// or for ctx to end, whichever comes first. When the value is not forced,
// the cache is checked again inside the flight so that a caller arriving
// just after a completed load does not trigger another one.
func (l *Loader[V]) load(ctx context.Context, key string, fn LoadFunc[V], force bool) (V, error) {
	// Values such as the request id carry over; cancellation does not.
	flightCtx := context.WithoutCancel(ctx)

	ch := l.group.DoChan(key, func() (interface{}, error) {
		if !force {
			if v, ok := l.cache.peek(key); ok {
				return v, nil
			}
		}

		runCtx, cancel := context.WithTimeout(flightCtx, l.flightTimeout)
		defer cancel()

		v, err := fn(runCtx)
		if err != nil {
			return v, err
		}

		l.cache.Set(key, v)
		return v, nil
	})

	var zero V
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
