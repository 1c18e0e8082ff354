// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

// Package config provides layered application configuration using Koanf v2.
// Precedence: environment variables > optional YAML config file > defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Search   SearchConfig   `koanf:"search"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"` // 0 = runtime.NumCPU()
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// SecurityConfig holds authentication and rate limiting settings. Token
// issuance belongs to the external identity provider; this service only
// validates tokens signed with the shared secret.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// APIConfig holds pagination limits for list endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SearchConfig holds the search ranking tuning values. The multipliers and
// thresholds are heuristic constants; changing them reshapes ranking without
// changing the blending algorithm's structure.
type SearchConfig struct {
	// AllTabLimit is the fixed per-category preview size on the "all" tab.
	AllTabLimit int `koanf:"all_tab_limit"`

	// MaxCandidates caps the candidate superset fetched from the store
	// before scoring.
	MaxCandidates int `koanf:"max_candidates"`

	// Cross-category normalization multipliers applied after scoring on
	// the "all" tab so blended categories rank comparably.
	UserMultiplier     float64 `koanf:"user_multiplier"`
	RecipeMultiplier   float64 `koanf:"recipe_multiplier"`
	DishListMultiplier float64 `koanf:"dishlist_multiplier"`

	// Minimum total score for a candidate to appear in results.
	UserMinScoreAll     float64 `koanf:"user_min_score_all"`
	UserMinScore        float64 `koanf:"user_min_score"`
	RecipeMinScore      float64 `koanf:"recipe_min_score"`
	DishListMinScoreAll float64 `koanf:"dishlist_min_score_all"`
	DishListMinScore    float64 `koanf:"dishlist_min_score"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid or unsafe values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size must be between 1 and api.max_page_size (%d), got %d",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if c.Search.AllTabLimit < 1 {
		return fmt.Errorf("search.all_tab_limit must be positive, got %d", c.Search.AllTabLimit)
	}
	if c.Search.UserMultiplier <= 0 || c.Search.RecipeMultiplier <= 0 || c.Search.DishListMultiplier <= 0 {
		return fmt.Errorf("search normalization multipliers must be positive")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Server.Environment == "production" && c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required in production")
	}
	return nil
}

// Load loads the configuration from defaults, an optional config file, and
// environment variables. See LoadWithKoanf for the layering rules.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
