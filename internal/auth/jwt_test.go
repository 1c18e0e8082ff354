// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dishlistapp/dishlist/internal/config"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:      "unit-test-secret-0123456789abcdefgh",
		SessionTimeout: time.Hour,
	}
}

func TestEmptySecretRejectsAllTokens(t *testing.T) {
	t.Parallel()

	// A secretless manager boots but authenticates nothing.
	m := NewJWTManager(&config.SecurityConfig{SessionTimeout: time.Hour})

	if _, err := m.GenerateToken("user-anna", "chef_anna"); err == nil {
		t.Fatal("expected GenerateToken to fail with no secret")
	}

	signed, err := NewJWTManager(testSecurityConfig()).GenerateToken("user-anna", "chef_anna")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(signed); err == nil {
		t.Fatal("expected ValidateToken to fail with no secret")
	}

	// Nor a token HMAC-signed with an empty key.
	empty := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-anna",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forged, err := empty.SignedString([]byte{})
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	if _, err := m.ValidateToken(forged); err == nil {
		t.Fatal("expected ValidateToken to fail for empty-key token")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecurityConfig())

	token, err := m.GenerateToken("user-anna", "chef_anna")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UID() != "user-anna" {
		t.Errorf("UID = %q, want user-anna", claims.UID())
	}
	if claims.Username != "chef_anna" {
		t.Errorf("Username = %q, want chef_anna", claims.Username)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	m1 := NewJWTManager(testSecurityConfig())
	m2 := NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "a-completely-different-secret-value-x",
		SessionTimeout: time.Hour,
	})

	token, err := m1.GenerateToken("user-anna", "chef_anna")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m2.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure for wrong secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testSecurityConfig()
	cfg.SessionTimeout = -time.Minute
	m := NewJWTManager(cfg)

	token, err := m.GenerateToken("user-anna", "chef_anna")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateTokenRejectsNonHMACAlgorithm(t *testing.T) {
	t.Parallel()

	// alg=none with an empty signature segment must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-anna"},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	m := NewJWTManager(testSecurityConfig())
	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("expected validation failure for alg=none token")
	}
}

func TestValidateTokenRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecurityConfig())
	token, err := m.GenerateToken("", "chef_anna")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil || !strings.Contains(err.Error(), "subject") {
		t.Fatalf("err = %v, want missing subject error", err)
	}
}
