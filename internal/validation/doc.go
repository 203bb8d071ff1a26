// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

// Package validation wraps go-playground/validator v10 behind a shared
// instance and converts its errors to the API's VALIDATION_ERROR body.
//
// Custom tags:
//
//	bggusername       letters, digits, underscore and inner spaces, at most 64 chars
//	collectionfilter  one of the collection status names
//	suggestformat     structured, tabular, text or one of their aliases
//
// Example:
//
//	type userSuggestRequest struct {
//	    Username string `validate:"required,bggusername"`
//	    TopN     int    `validate:"min=1,max=50"`
//	    Format   string `validate:"suggestformat"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
package validation
