// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package config

import (
	"testing"
)

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"http_port", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"SEARCH_ALL_TAB_LIMIT", "search.all_tab_limit"},
		{"SEARCH_DISHLIST_MULTIPLIER", "search.dishlist_multiplier"},
		{"LOG_LEVEL", "logging.level"},
		// Unmapped variables must be dropped, not passed through.
		{"PATH", ""},
		{"HOME", ""},
		{"SEARCH_UNKNOWN_KNOB", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.env); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
		}
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	if err := defaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9001")
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SEARCH_USER_MIN_SCORE", "45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Path = %q, want /tmp/test.duckdb", cfg.Database.Path)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v, want two trimmed origins", cfg.Security.CORSOrigins)
	}
	if cfg.Search.UserMinScore != 45 {
		t.Errorf("UserMinScore = %v, want 45", cfg.Search.UserMinScore)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"page size above max", func(c *Config) { c.API.DefaultPageSize = c.API.MaxPageSize + 1 }},
		{"zero all tab limit", func(c *Config) { c.Search.AllTabLimit = 0 }},
		{"negative multiplier", func(c *Config) { c.Search.RecipeMultiplier = -1 }},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "short" }},
		{"production without secret", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.JWTSecret = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
