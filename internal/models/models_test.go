// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestVisibilityValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value Visibility
		want  bool
	}{
		{VisibilityPublic, true},
		{VisibilityPrivate, true},
		{Visibility("public"), false},
		{Visibility(""), false},
		{Visibility("UNLISTED"), false},
	}
	for _, tt := range tests {
		if got := tt.value.Valid(); got != tt.want {
			t.Errorf("Visibility(%q).Valid() = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestUserFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{FirstName: "Anna", LastName: "Lee"}, "Anna Lee"},
		{"first only", User{FirstName: "Anna"}, "Anna"},
		{"last only", User{LastName: "Lee"}, "Lee"},
		{"whitespace trimmed", User{FirstName: "  Anna ", LastName: " Lee  "}, "Anna Lee"},
		{"no username fallback", User{Username: "chef_anna"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	withName := User{Username: "chef_anna", FirstName: "Anna", LastName: "Lee"}
	if got := withName.DisplayName(); got != "Anna Lee" {
		t.Errorf("DisplayName() = %q, want Anna Lee", got)
	}

	usernameOnly := User{Username: "chef_anna"}
	if got := usernameOnly.DisplayName(); got != "chef_anna" {
		t.Errorf("DisplayName() = %q, want chef_anna", got)
	}
}

func TestIngredientUnmarshalBothForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Ingredient
	}{
		{"plain string", `"2 cups flour"`, Ingredient{Text: "2 cups flour"}},
		{"structured item", `{"text":"2 cups flour"}`, Ingredient{Text: "2 cups flour"}},
		{"structured header", `{"type":"header","text":"Dough"}`, Ingredient{Type: IngredientTypeHeader, Text: "Dough"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got Ingredient
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIngredientUnmarshalRejectsOtherTypes(t *testing.T) {
	t.Parallel()

	var got Ingredient
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected error for numeric ingredient")
	}
}

func TestIngredientListDecodesMixedForms(t *testing.T) {
	t.Parallel()

	input := `["olive oil", {"type":"header","text":"Dough"}, {"text":"bread flour"}]`
	var got []Ingredient
	if err := json.Unmarshal([]byte(input), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []Ingredient{
		{Text: "olive oil"},
		{Type: IngredientTypeHeader, Text: "Dough"},
		{Text: "bread flour"},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ingredient[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
