// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dishlistapp/dishlist/internal/logging"
)

type contextKey string

const subjectKey contextKey = "auth_subject"

// Subject is the authenticated caller attached to a request context.
type Subject struct {
	UID      string
	Username string
}

// SubjectFromContext returns the authenticated subject, or false when
// the request was not authenticated.
func SubjectFromContext(ctx context.Context) (Subject, bool) {
	s, ok := ctx.Value(subjectKey).(Subject)
	return s, ok
}

// ContextWithSubject attaches a subject to the context. Exported for
// handler tests.
func ContextWithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, subjectKey, s)
}

// Middleware validates the Authorization bearer token and injects the
// subject into the request context. Requests without a valid token get
// 401 from the onUnauthorized callback.
func (m *JWTManager) Middleware(onUnauthorized func(w http.ResponseWriter, r *http.Request, reason string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				onUnauthorized(w, r, "missing bearer token")
				return
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
				onUnauthorized(w, r, "invalid or expired token")
				return
			}

			ctx := ContextWithSubject(r.Context(), Subject{
				UID:      claims.UID(),
				Username: claims.Username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer x"
// header. The scheme comparison is case-insensitive per RFC 9110.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
