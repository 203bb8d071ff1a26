// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy_Do(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		policy    RetryPolicy
		againFor  int // attempts that ask for another try
		failAt    int // attempt that returns boom, 0 for never
		wantCalls int
		wantErr   error
	}{
		{"success first", RetryPolicy{Attempts: 2, Delay: time.Millisecond}, 0, 0, 1, nil},
		{"retry once", RetryPolicy{Attempts: 2, Delay: time.Millisecond}, 1, 0, 2, nil},
		{"attempts exhausted", RetryPolicy{Attempts: 2, Delay: time.Millisecond}, 5, 0, 2, nil},
		{"error stops", RetryPolicy{Attempts: 3, Delay: time.Millisecond}, 5, 1, 1, boom},
		{"zero attempts means one", RetryPolicy{}, 5, 0, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := tt.policy.Do(context.Background(), func(ctx context.Context, attempt int) (bool, error) {
				calls++
				if attempt != calls {
					t.Errorf("attempt = %d, want %d", attempt, calls)
				}
				if attempt == tt.failAt {
					return false, boom
				}
				return attempt <= tt.againFor, nil
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryPolicy_WaitsDelay(t *testing.T) {
	p := RetryPolicy{Attempts: 2, Delay: 30 * time.Millisecond}
	start := time.Now()
	_ = p.Do(context.Background(), func(ctx context.Context, attempt int) (bool, error) {
		return true, nil
	})
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("Expected at least one delay, elapsed %v", elapsed)
	}
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.Attempts != 2 || p.Delay != 5*time.Second {
		t.Errorf("DefaultRetryPolicy = %+v, want 2 attempts / 5s", p)
	}
}
