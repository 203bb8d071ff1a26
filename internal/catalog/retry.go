// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"time"
)

// RetryPolicy is a bounded fixed-delay retry.
type RetryPolicy struct {
	// Attempts is the total number of calls, including the first.
	Attempts int

	// Delay is the wait between calls.
	Delay time.Duration
}

// DefaultRetryPolicy absorbs BGG's "collection is being prepared" response:
// one call, then one more after five seconds.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 2, Delay: 5 * time.Second}
}

// AttemptFunc performs one attempt. Returning again=true with a nil error
// asks for another attempt; any error stops immediately.
type AttemptFunc func(ctx context.Context, attempt int) (again bool, err error)

// Do runs fn until it stops asking for another attempt, fails, or the
// attempts are used up. It returns ctx.Err() if the context ends while
// waiting between attempts.
func (p RetryPolicy) Do(ctx context.Context, fn AttemptFunc) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		again, err := fn(ctx, attempt)
		if err != nil || !again {
			return err
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(p.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return nil
}
