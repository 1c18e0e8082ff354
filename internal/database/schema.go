// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaStatements creates all tables and indexes. Ordering matters:
// referenced tables first. DuckDB enforces the declared foreign keys.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		uid        VARCHAR PRIMARY KEY,
		username   VARCHAR NOT NULL DEFAULT '',
		first_name VARCHAR NOT NULL DEFAULT '',
		last_name  VARCHAR NOT NULL DEFAULT '',
		avatar_url VARCHAR NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS follows (
		follower_uid  VARCHAR NOT NULL REFERENCES users(uid),
		following_uid VARCHAR NOT NULL REFERENCES users(uid),
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (follower_uid, following_uid)
	)`,

	`CREATE TABLE IF NOT EXISTS recipes (
		id          VARCHAR PRIMARY KEY,
		title       VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		image_url   VARCHAR NOT NULL DEFAULT '',
		prep_time   INTEGER NOT NULL DEFAULT 0,
		cook_time   INTEGER NOT NULL DEFAULT 0,
		servings    INTEGER NOT NULL DEFAULT 0,
		creator_uid VARCHAR NOT NULL REFERENCES users(uid),
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS recipe_tags (
		recipe_id VARCHAR NOT NULL REFERENCES recipes(id),
		position  INTEGER NOT NULL,
		tag       VARCHAR NOT NULL,
		PRIMARY KEY (recipe_id, position)
	)`,

	// item_type distinguishes section headers from real ingredients;
	// position preserves authored order, which search ranking uses.
	`CREATE TABLE IF NOT EXISTS recipe_ingredients (
		recipe_id VARCHAR NOT NULL REFERENCES recipes(id),
		position  INTEGER NOT NULL,
		item_type VARCHAR NOT NULL DEFAULT '',
		item_text VARCHAR NOT NULL,
		PRIMARY KEY (recipe_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS dishlists (
		id          VARCHAR PRIMARY KEY,
		title       VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT '',
		visibility  VARCHAR NOT NULL DEFAULT 'PUBLIC',
		owner_uid   VARCHAR NOT NULL REFERENCES users(uid),
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS dishlist_recipes (
		dishlist_id VARCHAR NOT NULL REFERENCES dishlists(id),
		recipe_id   VARCHAR NOT NULL REFERENCES recipes(id),
		position    INTEGER NOT NULL DEFAULT 0,
		added_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (dishlist_id, recipe_id)
	)`,

	`CREATE TABLE IF NOT EXISTS dishlist_collaborators (
		dishlist_id VARCHAR NOT NULL REFERENCES dishlists(id),
		user_uid    VARCHAR NOT NULL REFERENCES users(uid),
		added_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (dishlist_id, user_uid)
	)`,

	`CREATE TABLE IF NOT EXISTS dishlist_followers (
		dishlist_id VARCHAR NOT NULL REFERENCES dishlists(id),
		user_uid    VARCHAR NOT NULL REFERENCES users(uid),
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (dishlist_id, user_uid)
	)`,

	// A pin is per-user, not a flag on the list itself.
	`CREATE TABLE IF NOT EXISTS dishlist_pins (
		user_uid    VARCHAR NOT NULL REFERENCES users(uid),
		dishlist_id VARCHAR NOT NULL REFERENCES dishlists(id),
		pinned_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_uid, dishlist_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_follows_following ON follows(following_uid)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_creator ON recipes(creator_uid)`,
	`CREATE INDEX IF NOT EXISTS idx_dishlists_owner ON dishlists(owner_uid)`,
	`CREATE INDEX IF NOT EXISTS idx_dishlist_recipes_recipe ON dishlist_recipes(recipe_id)`,
	`CREATE INDEX IF NOT EXISTS idx_dishlist_followers_user ON dishlist_followers(user_uid)`,
	`CREATE INDEX IF NOT EXISTS idx_dishlist_collaborators_user ON dishlist_collaborators(user_uid)`,
}

func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
