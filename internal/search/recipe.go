// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package search

import (
	"time"

	"github.com/dishlistapp/dishlist/internal/models"
)

const (
	recipeSavedBoostAll     = 10
	recipeCreatorBoostAll   = 6
	recipeSocialBoostAllCap = 10
	recipeSavedBoost        = 15
	recipeCreatorBoost      = 10
)

// scoreRecipe computes the relevance of a candidate recipe. All text
// signals are independent and additive: title, best tag, best
// ingredient, description, and creator name each contribute.
func scoreRecipe(m *matcher, r models.Recipe, sc *SocialContext, allTab bool, now time.Time) models.ScoredRecipe {
	score := m.score(r.Title, recipeTitleWeights)
	score += m.bestScore(r.Tags, recipeTagWeights)
	score += bestIngredientScore(m, r.Ingredients)
	score += m.score(r.Description, recipeDescriptionWeights)
	score += m.score(r.Creator.FullName(), recipeCreatorWeights)

	saved := sc.SavedRecipes[r.ID]
	creatorFollowed := sc.Following[r.Creator.UID]

	if allTab {
		if score >= socialBoostGate {
			var boost float64
			if saved {
				boost += recipeSavedBoostAll
			}
			if creatorFollowed {
				boost += recipeCreatorBoostAll
			}
			if boost > recipeSocialBoostAllCap {
				boost = recipeSocialBoostAllCap
			}
			score += boost
		}
	} else {
		if saved {
			score += recipeSavedBoost
		}
		if creatorFollowed {
			score += recipeCreatorBoost
		}
	}

	score += recencyBoost(r.UpdatedAt, maxRecencyBoost, now)

	return models.ScoredRecipe{
		Recipe:            r,
		Score:             score,
		IsSaved:           saved,
		IsCreatorFollowed: creatorFollowed,
	}
}

// bestIngredientScore returns the best single ingredient match.
// The first three entries use the higher weight table: main ingredients
// listed first matter more for discovery than trailing ones. Header
// entries score like any other entry.
func bestIngredientScore(m *matcher, ingredients []models.Ingredient) float64 {
	var best float64
	for i, ing := range ingredients {
		w := recipeIngredientWeights
		if i < mainIngredientCount {
			w = recipeMainIngredientWeights
		}
		if s := m.score(ing.Text, w); s > best {
			best = s
		}
	}
	return best
}
