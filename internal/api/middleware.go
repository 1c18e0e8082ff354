// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/dishlistapp/dishlist/internal/config"
	"github.com/dishlistapp/dishlist/internal/logging"
)

// Middleware bundles the cross-cutting HTTP middleware built from the
// security configuration. A single instance is shared by all routes so the
// CORS handler is constructed once.
type Middleware struct {
	cfg         *config.SecurityConfig
	corsHandler func(http.Handler) http.Handler
}

// NewMiddleware creates the middleware set for the given security settings.
func NewMiddleware(cfg *config.SecurityConfig) *Middleware {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	return &Middleware{
		cfg:         cfg,
		corsHandler: corsHandler,
	}
}

// CORS returns the CORS middleware.
func (m *Middleware) CORS() func(http.Handler) http.Handler {
	return m.corsHandler
}

// RateLimit returns an IP-keyed rate limiter for the API routes. Disabled
// rate limiting yields a pass-through middleware.
func (m *Middleware) RateLimit() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is disabled")
		return func(next http.Handler) http.Handler { return next }
	}

	requests := m.cfg.RateLimitReqs
	if requests <= 0 {
		requests = 100
	}
	window := m.cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests, slow down", nil)
		}),
	)
}

// SecurityHeaders sets the baseline security response headers on every
// route.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// RateLimitHealth returns a looser limiter for health probes so monitoring
// systems are not starved by the API limit.
func (m *Middleware) RateLimitHealth() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		300,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
