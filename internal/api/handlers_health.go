// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package api

import (
	"net/http"
	"time"

	"github.com/dishlistapp/dishlist/internal/models"
)

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	UptimeS  int64  `json:"uptime_seconds"`
}

// handleHealth serves GET /api/v1/health with a combined status report.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := healthStatus{
		Status:   "healthy",
		Database: "up",
		UptimeS:  int64(time.Since(h.startTime).Seconds()),
	}
	code := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "down"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// handleLiveness answers liveness probes without touching dependencies.
func (h *Handler) handleLiveness(w http.ResponseWriter, r *http.Request) {
	respondData(w, map[string]string{"status": "alive"}, time.Now())
}

// handleReadiness answers readiness probes; not ready until the database
// responds.
func (h *Handler) handleReadiness(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "DATABASE_ERROR",
			"Database is not ready", err)
		return
	}
	respondData(w, map[string]string{"status": "ready"}, time.Now())
}
