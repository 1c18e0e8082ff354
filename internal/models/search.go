// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package models

// ScoredUser is a user search result with its relevance score and the
// relationship flags the client renders next to it.
type ScoredUser struct {
	User
	Score       float64 `json:"score"`
	IsFollowing bool    `json:"isFollowing"`
	IsMutual    bool    `json:"isMutual"`
}

// ScoredRecipe is a recipe search result with its relevance score.
type ScoredRecipe struct {
	Recipe
	Score             float64 `json:"score"`
	IsSaved           bool    `json:"isSaved"`
	IsCreatorFollowed bool    `json:"isCreatorFollowed"`
}

// ScoredDishList is a dishlist search result with its relevance score.
// IsCollaborator is derived from the collaborator list at scoring time.
type ScoredDishList struct {
	DishList
	Score          float64 `json:"score"`
	IsFollowing    bool    `json:"isFollowing"`
	IsCollaborator bool    `json:"isCollaborator"`
}

// SearchResponse is the payload of GET /api/v1/search. On the "all" tab all
// three slices may be populated and NextCursor is always nil; on a dedicated
// tab only that tab's slice is populated.
type SearchResponse struct {
	Users      []ScoredUser     `json:"users"`
	Recipes    []ScoredRecipe   `json:"recipes"`
	DishLists  []ScoredDishList `json:"dishLists"`
	NextCursor *string          `json:"nextCursor"`
}

// EmptySearchResponse returns a response with empty (non-nil) result slices,
// used for the no-query and unknown-tab terminal branches.
func EmptySearchResponse() *SearchResponse {
	return &SearchResponse{
		Users:     []ScoredUser{},
		Recipes:   []ScoredRecipe{},
		DishLists: []ScoredDishList{},
	}
}
