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
	"github.com/dishlistapp/dishlist/internal/database"
	"github.com/dishlistapp/dishlist/internal/logging"
	"github.com/dishlistapp/dishlist/internal/models"
)

// handleListDishLists serves GET /api/v1/dishlists.
//
// Query parameters:
//   - filter: all | mine | collaborations | following (default all)
//   - limit: page size, clamped to api.max_page_size
//
// Pinned lists sort first, then most recently updated.
func (h *Handler) handleListDishLists(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required", nil)
		return
	}

	filter, err := database.ParseDishListFilter(strings.ToLower(r.URL.Query().Get("filter")))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	limit := clampLimit(getIntParam(r, "limit", 0), h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize)

	lists, err := h.db.ListDishLists(r.Context(), subject.UID, filter, limit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("DishList listing failed")
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
			"Could not load dishlists", err)
		return
	}
	if lists == nil {
		lists = []models.DishList{}
	}

	respondData(w, map[string]interface{}{"dishLists": lists}, start)
}
