// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrors_IsMatchesKind(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"invalid filter", InvalidFilter([]string{"bogus"}), ErrInvalidFilter},
		{"invalid mode", InvalidMode("avg"), ErrInvalidMode},
		{"invalid format", InvalidFormat("xml"), ErrInvalidFormat},
		{"username", UsernameNotFound("nobody"), ErrUsernameNotFound},
		{"empty collection", EmptyCollection("someone"), ErrEmptyCollection},
		{"empty liked", EmptyLikedSet(), ErrEmptyLikedSet},
		{"upstream", UpstreamUnavailable("hot", context.DeadlineExceeded), ErrUpstreamUnavailable},
		{"search", NoSearchResults("zzz"), ErrNoSearchResults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("suggest: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, sentinel) = false", wrapped)
			}
			if errors.Is(wrapped, ErrNoSearchResults) && tt.sentinel != ErrNoSearchResults {
				t.Error("matched an unrelated kind")
			}
		})
	}
}

func TestErrors_UpstreamUnwraps(t *testing.T) {
	err := UpstreamUnavailable("thing 13", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Expected cause to be reachable through Unwrap")
	}
	if !IsRetryable(fmt.Errorf("load hot set: %w", err)) {
		t.Error("Upstream errors must be retryable")
	}
}

func TestErrors_OnlyUpstreamIsRetryable(t *testing.T) {
	for _, err := range []error{
		InvalidFilter([]string{"x"}),
		UsernameNotFound("u"),
		EmptyCollection("u"),
		NoSearchResults("q"),
		errors.New("plain"),
	} {
		if IsRetryable(err) {
			t.Errorf("IsRetryable(%v) = true", err)
		}
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(UsernameNotFound("meeple")); got != "👤⛔ Username 'meeple' not found" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(NoSearchResults("zzz")); got != "Empty results, try another string" {
		t.Errorf("UserMessage = %q", got)
	}

	msg := UserMessage(EmptyCollection("meeple"))
	if !strings.Contains(msg, "no boardgame in the collection") || !strings.Contains(msg, "big collection, try later") {
		t.Errorf("EmptyCollection message must list both causes, got %q", msg)
	}

	// Upstream causes never leak into the user message.
	msg = UserMessage(UpstreamUnavailable("hot", errors.New("dial tcp 10.0.0.1:443")))
	if strings.Contains(msg, "10.0.0.1") {
		t.Errorf("internal detail leaked: %q", msg)
	}

	if got := UserMessage(errors.New("nil pointer")); got != GenericMessage {
		t.Errorf("UserMessage(non-domain) = %q, want generic", got)
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(fmt.Errorf("x: %w", InvalidMode("avg"))); k != KindInvalidMode {
		t.Errorf("KindOf = %v, want invalid_mode", k)
	}
	if k := KindOf(errors.New("x")); k != 0 {
		t.Errorf("KindOf(plain) = %v, want 0", k)
	}
	if KindUpstreamUnavailable.String() != "upstream_unavailable" {
		t.Errorf("String() = %s", KindUpstreamUnavailable)
	}
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []string
		wantErr bool
		wantMsg string
	}{
		{"defaults", DefaultUserFilters, false, ""},
		{"all allowed", AllowedFilters, false, ""},
		{"empty", nil, true, "at least one"},
		{"offending sorted", []string{"own", "zzz", "played", "zzz"}, true, "unexpected filter played, zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilters(tt.filters)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateFilters() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidFilter) {
				t.Errorf("Expected ErrInvalidFilter, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("message %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	status := map[string]bool{"own": false, "wishlist": true}
	if !Matches(status, []string{"own", "wishlist"}) {
		t.Error("Expected wishlist flag to match")
	}
	if Matches(status, []string{"own", "fortrade"}) {
		t.Error("Expected no match")
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		if got, err := ParseMode(string(m)); err != nil || got != m {
			t.Errorf("ParseMode(%s) = %s, %v", m, got, err)
		}
	}
	if _, err := ParseMode("avg"); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("ParseMode(avg) error = %v", err)
	}
}
