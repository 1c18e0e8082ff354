// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

// Package models defines the domain entities shared across the API,
// database, and search packages.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Visibility controls who can see a dishlist and its recipes.
type Visibility string

const (
	// VisibilityPublic makes a dishlist discoverable by every user.
	VisibilityPublic Visibility = "PUBLIC"

	// VisibilityPrivate restricts a dishlist to its owner, collaborators,
	// and followers.
	VisibilityPrivate Visibility = "PRIVATE"
)

// Valid reports whether v is a known visibility value.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// User is a member of the platform. Username and name fields are optional:
// accounts created through the external identity provider may carry only an
// identifier until the profile is completed.
type User struct {
	UID       string `json:"uid"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// FullName returns the user's first and last name joined, or "" when
// neither is set. Search scores name and username as independent
// fields, so FullName never falls back to the username.
func (u User) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// DisplayName returns the user's full name, or the username when no name
// fields are set.
func (u User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

// IngredientTypeHeader marks an ingredient entry that acts as a section
// header ("For the sauce:") rather than an actual ingredient.
const IngredientTypeHeader = "header"

// Ingredient is a single entry in a recipe's ingredient list. Entries are
// authored either as plain strings or as structured {type, text} records;
// both forms decode into this struct.
type Ingredient struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text"`
}

// UnmarshalJSON accepts both the legacy plain-string form ("2 cups flour")
// and the structured form ({"type":"item","text":"2 cups flour"}).
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		i.Type = ""
		i.Text = s
		return nil
	}

	type ingredient Ingredient
	var rec ingredient
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("ingredient must be a string or {type, text} record: %w", err)
	}
	*i = Ingredient(rec)
	return nil
}

// Recipe is a user-authored recipe. Tags and ingredients preserve their
// authored order; ingredient position matters for search ranking.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	PrepTime    int          `json:"prepTime,omitempty"` // minutes
	CookTime    int          `json:"cookTime,omitempty"` // minutes
	Servings    int          `json:"servings,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Creator     User         `json:"creator"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// RecipeSample is the abbreviated recipe projection embedded in dishlist
// search candidates: title plus ingredients, nothing else.
type RecipeSample struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
}

// DishList is a named, shareable collection of recipes.
type DishList struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Visibility    Visibility     `json:"visibility"`
	Owner         User           `json:"owner"`
	Collaborators []User         `json:"collaborators,omitempty"`
	SampleRecipes []RecipeSample `json:"sampleRecipes,omitempty"`
	FollowerCount int            `json:"followerCount"`
	RecipeCount   int            `json:"recipeCount"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
