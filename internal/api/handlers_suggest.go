// Hotpick - Trending Board Game Suggestions
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hotpick

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/hotpick/internal/logging"
	"github.com/tomtom215/hotpick/internal/recommend"
	"github.com/tomtom215/hotpick/internal/validation"
)

// itemSuggestRequest holds the parameters of GET /suggestions/item/{itemID}.
type itemSuggestRequest struct {
	ItemID string `validate:"required,numeric,max=12"`
	TopN   int    `validate:"min=1"`
	Format string `validate:"suggestformat"`
}

// userSuggestRequest holds the parameters of GET /suggestions/user/{username}.
type userSuggestRequest struct {
	Username string `validate:"required,bggusername"`
	TopN     int    `validate:"min=1"`
	Format   string `validate:"suggestformat"`
}

// searchRequest holds the parameters of GET /search.
type searchRequest struct {
	Query string `validate:"required,max=200"`
}

// SuggestForItem handles GET /api/v1/suggestions/item/{itemID}
// Ranks the hot set against a single game.
func (h *Handler) SuggestForItem(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := itemSuggestRequest{
		ItemID: chi.URLParam(r, "itemID"),
		TopN:   getIntParam(r, "top_n", h.cfg.DefaultTopN, 0),
		Format: getStringParam(r, "format", h.cfg.DefaultFormat),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if !h.checkTopN(w, r, req.TopN) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	res, err := h.svc.RankAgainstItem(ctx, req.ItemID, req.TopN, req.Format)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	h.respondSuggestions(w, r, start, req.ItemID, res)
}

// SuggestForUser handles GET /api/v1/suggestions/user/{username}
// Ranks the hot set against the liked part of a user's collection.
func (h *Handler) SuggestForUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := userSuggestRequest{
		Username: strings.TrimSpace(chi.URLParam(r, "username")),
		TopN:     getIntParam(r, "top_n", h.cfg.DefaultTopN, 0),
		Format:   getStringParam(r, "format", h.cfg.DefaultFormat),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}
	if !h.checkTopN(w, r, req.TopN) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	logging.Ctx(ctx).Debug().Str("username", logging.Sanitize(req.Username)).Msg("user suggestions requested")

	res, err := h.svc.RankAgainstUser(ctx, req.Username, req.TopN, req.Format)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	h.respondSuggestions(w, r, start, req.Username, res)
}

// RefreshHot handles POST /api/v1/hot/refresh
// Forces a hot set reload. A rejected refresh keeps the previous snapshot
// and returns 503.
func (h *Handler) RefreshHot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RefreshTimeout)
	defer cancel()

	n, err := h.svc.RefreshHotSet(ctx)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, start, RefreshData{Items: n})
}

// Search handles GET /api/v1/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := searchRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()

	found, err := h.svc.Search(ctx, req.Query)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondSuccess(w, r, start, map[string]interface{}{
		"query":      req.Query,
		"count":      len(found),
		"candidates": found,
	})
}

// checkTopN enforces the configured upper bound, which the struct tags
// cannot express.
func (h *Handler) checkTopN(w http.ResponseWriter, r *http.Request, topN int) bool {
	if topN <= h.cfg.MaxTopN {
		return true
	}
	respondError(w, r, http.StatusBadRequest, &APIError{
		Code:    "VALIDATION_ERROR",
		Message: "TopN must be at most " + strconv.Itoa(h.cfg.MaxTopN),
		Details: map[string]interface{}{"field": "TopN", "tag": "max", "value": topN},
	}, nil)
	return false
}

// respondSuggestions writes res as JSON, or as CSV for tabular results when
// the client accepts text/csv.
func (h *Handler) respondSuggestions(w http.ResponseWriter, r *http.Request, start time.Time, query string, res *recommend.Result) {
	if res.Format == recommend.FormatTabular && strings.Contains(r.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := recommend.WriteCSV(w, res.Rows); err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to write CSV response")
		}
		return
	}

	respondSuccess(w, r, start, SuggestionsData{
		Query:  query,
		Count:  res.Len(),
		Result: res,
	})
}
