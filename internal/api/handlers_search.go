// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dishlistapp/dishlist/internal/auth"
	"github.com/dishlistapp/dishlist/internal/logging"
	"github.com/dishlistapp/dishlist/internal/metrics"
	"github.com/dishlistapp/dishlist/internal/search"
)

// searchRequest carries the validated query parameters of GET /search.
// Tab is deliberately not an enum here: an unrecognized tab is a valid
// request that yields empty results, not a validation failure. Limit
// and Cursor are likewise forgiving: an oversized limit is clamped to
// api.max_page_size and an unrecognized cursor restarts pagination at
// the first page.
type searchRequest struct {
	Query  string `validate:"max=200"`
	Tab    string `validate:"max=32"`
	Cursor string
	Limit  int    `validate:"min=0"`
}

// handleSearch serves GET /api/v1/search.
//
// Query parameters:
//   - q: the search query (empty returns an empty result set)
//   - tab: all | users | recipes | dishlists (default all)
//   - cursor: opaque pagination cursor from a previous response
//   - limit: page size for dedicated tabs, clamped to api.max_page_size
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required", nil)
		return
	}

	req := searchRequest{
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		Tab:    strings.ToLower(strings.TrimSpace(r.URL.Query().Get("tab"))),
		Cursor: r.URL.Query().Get("cursor"),
		Limit:  getIntParam(r, "limit", 0),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	tab := search.ParseTab(req.Tab)
	limit := clampLimit(req.Limit, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize)

	resp, err := h.engine.Search(r.Context(), subject.UID, search.Params{
		Query:  req.Query,
		Tab:    tab,
		Cursor: req.Cursor,
		Limit:  limit,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).
			Str("tab", string(tab)).
			Msg("Search failed")
		respondError(w, http.StatusInternalServerError, "SEARCH_ERROR",
			"Search could not be completed", err)
		return
	}

	// User-supplied tab values must not become metric labels.
	metricTab := string(tab)
	if !tab.Known() {
		metricTab = "unknown"
	}
	metrics.RecordSearch(metricTab, time.Since(start))
	metrics.SearchResultsReturned.WithLabelValues(metricTab).
		Observe(float64(len(resp.Users) + len(resp.Recipes) + len(resp.DishLists)))

	respondData(w, resp, start)
}
