// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

// Package api implements the HTTP surface of the service: routing,
// request parsing, and response shaping. Handlers stay thin; ranking
// lives in internal/search and persistence in internal/database.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dishlistapp/dishlist/internal/auth"
	"github.com/dishlistapp/dishlist/internal/config"
	"github.com/dishlistapp/dishlist/internal/database"
	"github.com/dishlistapp/dishlist/internal/middleware"
	"github.com/dishlistapp/dishlist/internal/search"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	db        *database.DB
	engine    *search.Engine
	jwt       *auth.JWTManager
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the API handler set.
func NewHandler(db *database.DB, engine *search.Engine, jwt *auth.JWTManager, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		engine:    engine,
		jwt:       jwt,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// Router builds the chi router with all routes and middleware attached.
func (h *Handler) Router() http.Handler {
	m := NewMiddleware(&h.cfg.Security)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeaders)
	r.Use(m.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(m.RateLimitHealth())
		r.Get("/", h.handleHealth)
		r.Get("/live", h.handleLiveness)
		r.Get("/ready", h.handleReadiness)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(h.jwt.Middleware(unauthorized))

		r.Get("/search", h.handleSearch)
		r.Get("/dishlists", h.handleListDishLists)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	respondError(w, http.StatusUnauthorized, "AUTH_REQUIRED", reason, nil)
}
