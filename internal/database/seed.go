// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dishlistapp/dishlist/internal/logging"
	"github.com/dishlistapp/dishlist/internal/models"
)

// SeedMockData populates a small development dataset. It is a no-op
// when users already exist, so restarts with seeding enabled are safe.
func (db *DB) SeedMockData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		logging.Debug().Int("users", count).Msg("Skipping mock data seed, users exist")
		return nil
	}

	now := time.Now().UTC()

	users := []models.User{
		{UID: "user-anna", Username: "chef_anna", FirstName: "Anna", LastName: "Lee"},
		{UID: "user-ben", Username: "ben_bakes", FirstName: "Ben", LastName: "Ortiz"},
		{UID: "user-chiara", Username: "chiara", FirstName: "Chiara", LastName: "Rossi"},
		{UID: "user-dev", Username: "devtest", FirstName: "Dev", LastName: "Tester"},
	}
	for _, u := range users {
		if err := db.CreateUser(ctx, u); err != nil {
			return err
		}
	}

	recipes := []models.Recipe{
		{
			ID: "recipe-chicken-curry", Title: "Chicken Curry",
			Description: "Weeknight curry with pantry spices", PrepTime: 15, CookTime: 30, Servings: 4,
			Tags: []string{"dinner", "curry"},
			Ingredients: []models.Ingredient{
				{Text: "chicken thighs"}, {Text: "coconut milk"}, {Text: "curry paste"}, {Text: "rice"},
			},
			Creator: users[0], UpdatedAt: now.AddDate(0, 0, -3),
		},
		{
			ID: "recipe-focaccia", Title: "Overnight Focaccia",
			Description: "No-knead, long cold ferment", PrepTime: 20, CookTime: 25, Servings: 8,
			Tags: []string{"bread", "baking"},
			Ingredients: []models.Ingredient{
				{Type: models.IngredientTypeHeader, Text: "Dough"},
				{Text: "bread flour"}, {Text: "olive oil"}, {Text: "flaky salt"},
			},
			Creator: users[1], UpdatedAt: now.AddDate(0, 0, -10),
		},
		{
			ID: "recipe-pasta-norma", Title: "Pasta alla Norma",
			Description: "Eggplant, tomato, ricotta salata", PrepTime: 10, CookTime: 25, Servings: 2,
			Tags: []string{"pasta", "vegetarian"},
			Ingredients: []models.Ingredient{
				{Text: "eggplant"}, {Text: "rigatoni"}, {Text: "tomato passata"}, {Text: "ricotta salata"},
			},
			Creator: users[2], UpdatedAt: now.AddDate(0, 0, -45),
		},
	}
	for _, r := range recipes {
		if err := db.CreateRecipe(ctx, r); err != nil {
			return err
		}
	}

	lists := []models.DishList{
		{
			ID: "list-weeknight", Title: "Weeknight Dinners",
			Description: "Fast meals for busy evenings", Visibility: models.VisibilityPublic,
			Owner: users[0], Collaborators: []models.User{users[1]},
			UpdatedAt: now.AddDate(0, 0, -2),
		},
		{
			ID: "list-baking", Title: "Baking Projects",
			Description: "Longer weekend bakes", Visibility: models.VisibilityPublic,
			Owner: users[1], UpdatedAt: now.AddDate(0, 0, -8),
		},
		{
			ID: "list-private", Title: "Meal Prep Drafts",
			Visibility: models.VisibilityPrivate,
			Owner:      users[2], UpdatedAt: now.AddDate(0, 0, -1),
		},
	}
	for _, d := range lists {
		if err := db.CreateDishList(ctx, d); err != nil {
			return err
		}
	}

	links := []struct{ list, recipe string }{
		{"list-weeknight", "recipe-chicken-curry"},
		{"list-weeknight", "recipe-pasta-norma"},
		{"list-baking", "recipe-focaccia"},
		{"list-private", "recipe-pasta-norma"},
	}
	for _, l := range links {
		if err := db.AddRecipeToDishList(ctx, l.list, l.recipe); err != nil {
			return err
		}
	}

	follows := []struct{ follower, following string }{
		{"user-dev", "user-anna"},
		{"user-anna", "user-dev"},
		{"user-dev", "user-ben"},
		{"user-chiara", "user-anna"},
	}
	for _, f := range follows {
		if err := db.AddFollow(ctx, f.follower, f.following); err != nil {
			return err
		}
	}

	if err := db.FollowDishList(ctx, "user-dev", "list-baking"); err != nil {
		return err
	}
	if err := db.PinDishList(ctx, "user-dev", "list-baking"); err != nil {
		return err
	}

	logging.Info().
		Int("users", len(users)).
		Int("recipes", len(recipes)).
		Int("dishlists", len(lists)).
		Msg("Seeded mock data")
	return nil
}
