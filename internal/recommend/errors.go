// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies domain errors.
type Kind int

const (
	// KindInvalidFilter means a collection filter outside the status vocabulary.
	KindInvalidFilter Kind = iota + 1
	// KindInvalidMode means an unknown aggregation mode.
	KindInvalidMode
	// KindInvalidFormat means an unknown output format.
	KindInvalidFormat
	// KindUsernameNotFound means the upstream reports no such user.
	KindUsernameNotFound
	// KindEmptyCollection means nothing survived collection filtering.
	KindEmptyCollection
	// KindEmptyLikedSet means ranking was asked against nothing.
	KindEmptyLikedSet
	// KindUpstreamUnavailable wraps collaborator timeouts and failures.
	KindUpstreamUnavailable
	// KindNoSearchResults means a catalog search matched nothing.
	KindNoSearchResults
)

// String returns the snake_case code used in API responses and logs.
func (k Kind) String() string {
	switch k {
	case KindInvalidFilter:
		return "invalid_filter"
	case KindInvalidMode:
		return "invalid_mode"
	case KindInvalidFormat:
		return "invalid_format"
	case KindUsernameNotFound:
		return "username_not_found"
	case KindEmptyCollection:
		return "empty_collection"
	case KindEmptyLikedSet:
		return "empty_liked_set"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindNoSearchResults:
		return "no_search_results"
	default:
		return "unknown"
	}
}

// Error is a domain error. Message is safe to show to an end user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so the Err* sentinels work with
// errors.Is regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidFilter       = &Error{Kind: KindInvalidFilter, Message: "invalid filter"}
	ErrInvalidMode         = &Error{Kind: KindInvalidMode, Message: "invalid mode"}
	ErrInvalidFormat       = &Error{Kind: KindInvalidFormat, Message: "invalid format"}
	ErrUsernameNotFound    = &Error{Kind: KindUsernameNotFound, Message: "username not found"}
	ErrEmptyCollection     = &Error{Kind: KindEmptyCollection, Message: "empty collection"}
	ErrEmptyLikedSet       = &Error{Kind: KindEmptyLikedSet, Message: "empty liked set"}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable, Message: "upstream unavailable"}
	ErrNoSearchResults     = &Error{Kind: KindNoSearchResults, Message: "no search results"}
)

// GenericMessage is shown for errors that carry no user-facing text.
const GenericMessage = "Generic error occurred"

// InvalidFilter reports the offending filter values, sorted.
func InvalidFilter(bad []string) error {
	sorted := append([]string(nil), bad...)
	sort.Strings(sorted)
	return &Error{
		Kind:    KindInvalidFilter,
		Message: fmt.Sprintf("unexpected filter %s, allowed: %s", strings.Join(sorted, ", "), strings.Join(AllowedFilters, ", ")),
	}
}

// InvalidMode reports an unknown aggregation mode.
func InvalidMode(mode string) error {
	return &Error{
		Kind:    KindInvalidMode,
		Message: fmt.Sprintf("mode '%s' not in allowed ones: %s", mode, joinModes()),
	}
}

// InvalidFormat reports an unknown output format.
func InvalidFormat(format string) error {
	return &Error{
		Kind:    KindInvalidFormat,
		Message: fmt.Sprintf("unexpected value '%s' for format, allowed: %s", format, strings.Join(formatNames(), ", ")),
	}
}

// UsernameNotFound reports an unknown collection owner.
func UsernameNotFound(username string) error {
	return &Error{
		Kind:    KindUsernameNotFound,
		Message: fmt.Sprintf("👤⛔ Username '%s' not found", username),
	}
}

// EmptyCollection reports a collection with nothing left after filtering.
// Upstream cannot tell an empty collection from one still being prepared,
// so both causes are listed.
func EmptyCollection(username string) error {
	return &Error{
		Kind: KindEmptyCollection,
		Message: fmt.Sprintf("📜⛔ No liked boardgame for user '%s'. This can be caused by:\n"+
			"- no boardgame in the collection, try another username\n"+
			"- user has a big collection, try later", username),
	}
}

// EmptyLikedSet reports a ranking request with no liked items.
func EmptyLikedSet() error {
	return &Error{
		Kind:    KindEmptyLikedSet,
		Message: "no liked boardgame to compare the hot list against",
	}
}

// UpstreamUnavailable wraps a collaborator failure.
func UpstreamUnavailable(op string, err error) error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: "⏳ BoardGameGeek is not responding (" + op + "), try again later",
		Err:     err,
	}
}

// NoSearchResults reports an empty catalog search.
func NoSearchResults(query string) error {
	return &Error{
		Kind:    KindNoSearchResults,
		Message: "Empty results, try another string",
		Err:     fmt.Errorf("query %q", query),
	}
}

// UserMessage returns the text to show an end user for err.
// Errors outside the domain taxonomy get GenericMessage.
func UserMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return GenericMessage
}

// KindOf returns the domain kind of err, or 0 if err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

// IsRetryable reports whether the caller may retry err with backoff.
// Only upstream failures qualify.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}
