// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package database

import (
	"context"
	"fmt"

	"github.com/dishlistapp/dishlist/internal/models"
)

// CreateUser inserts a user record.
func (db *DB) CreateUser(ctx context.Context, u models.User) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (uid, username, first_name, last_name, avatar_url) VALUES (?, ?, ?, ?, ?)`,
		u.UID, u.Username, u.FirstName, u.LastName, u.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", u.UID, err)
	}
	return nil
}

// CreateRecipe inserts a recipe with its tags and ingredients in one
// transaction so a partial recipe never becomes visible.
func (db *DB) CreateRecipe(ctx context.Context, r models.Recipe) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO recipes (id, title, description, image_url, prep_time, cook_time, servings, creator_uid, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Description, r.ImageURL, r.PrepTime, r.CookTime, r.Servings, r.Creator.UID, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recipe %s: %w", r.ID, err)
	}

	for i, tag := range r.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, position, tag) VALUES (?, ?, ?)`,
			r.ID, i, tag); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}
	for i, ing := range r.Ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, position, item_type, item_text) VALUES (?, ?, ?, ?)`,
			r.ID, i, ing.Type, ing.Text); err != nil {
			return fmt.Errorf("failed to insert ingredient: %w", err)
		}
	}

	return tx.Commit()
}

// CreateDishList inserts a dishlist with its collaborator edges.
func (db *DB) CreateDishList(ctx context.Context, d models.DishList) error {
	if !d.Visibility.Valid() {
		return fmt.Errorf("invalid visibility %q", d.Visibility)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO dishlists (id, title, description, visibility, owner_uid, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Description, string(d.Visibility), d.Owner.UID, d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create dishlist %s: %w", d.ID, err)
	}

	for _, c := range d.Collaborators {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO dishlist_collaborators (dishlist_id, user_uid) VALUES (?, ?)`,
			d.ID, c.UID); err != nil {
			return fmt.Errorf("failed to insert collaborator: %w", err)
		}
	}

	return tx.Commit()
}

// AddRecipeToDishList links a recipe into a dishlist at the next
// position.
func (db *DB) AddRecipeToDishList(ctx context.Context, dishListID, recipeID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO dishlist_recipes (dishlist_id, recipe_id, position)
		 SELECT ?, ?, COALESCE(MAX(position) + 1, 0) FROM dishlist_recipes WHERE dishlist_id = ?`,
		dishListID, recipeID, dishListID)
	if err != nil {
		return fmt.Errorf("failed to add recipe to dishlist: %w", err)
	}
	return nil
}
