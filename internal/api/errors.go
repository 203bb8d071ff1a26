// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/hotpick/internal/recommend"
)

// upstreamRetryAfter is sent with 503 responses, in seconds.
const upstreamRetryAfter = "30"

// statusForError maps a domain error to its HTTP status and error code.
// Errors outside the domain map to 500.
func statusForError(err error) (int, string) {
	kind := recommend.KindOf(err)
	switch kind {
	case recommend.KindInvalidFilter, recommend.KindInvalidMode, recommend.KindInvalidFormat:
		return http.StatusBadRequest, errorCode(kind)
	case recommend.KindUsernameNotFound, recommend.KindNoSearchResults:
		return http.StatusNotFound, errorCode(kind)
	case recommend.KindEmptyCollection, recommend.KindEmptyLikedSet:
		return http.StatusUnprocessableEntity, errorCode(kind)
	case recommend.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable, errorCode(kind)
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func errorCode(k recommend.Kind) string {
	return strings.ToUpper(k.String())
}
