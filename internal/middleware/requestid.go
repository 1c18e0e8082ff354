// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

// Package middleware holds the HTTP middleware shared by all routes:
// request identification and Prometheus instrumentation. Routing-level
// middleware (CORS, rate limiting, auth) is wired in the api package.
package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dishlistapp/dishlist/internal/logging"
)

// RequestID assigns each request a unique ID, exposes it in the
// X-Request-ID response header, and threads it through the context for
// structured logging. An upstream proxy's ID is reused when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
