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
	dishListFollowBoostAll    = 10
	dishListOwnerBoostAll     = 8
	dishListSocialBoostAllCap = 10
	dishListFollowBoost       = 20
)

// scoreDishList computes the relevance of a candidate dishlist across
// its own fields, its owner, its collaborators, and a sample of its
// contained recipes.
func scoreDishList(m *matcher, d models.DishList, sc *SocialContext, allTab bool, now time.Time) models.ScoredDishList {
	score := m.score(d.Title, dishListTitleWeights)
	score += m.score(d.Owner.FullName(), dishListOwnerNameWeights)
	score += m.score(d.Owner.Username, dishListOwnerUsernameWeights)
	score += bestCollaboratorScore(m, d.Collaborators)
	score += bestSampleTitleScore(m, d.SampleRecipes)
	score += firstSampleIngredientScore(m, d.SampleRecipes)
	score += m.score(d.Description, dishListDescriptionWeights)

	following := sc.FollowedDishLists[d.ID]
	ownerFollowed := sc.Following[d.Owner.UID]

	if allTab {
		if score >= socialBoostGate {
			var boost float64
			if following {
				boost += dishListFollowBoostAll
			}
			if ownerFollowed {
				boost += dishListOwnerBoostAll
			}
			if boost > dishListSocialBoostAllCap {
				boost = dishListSocialBoostAllCap
			}
			score += boost
		}
		if score >= socialBoostGate {
			score += popularityBoost(d.FollowerCount, maxPopularityBoost)
		}
	} else {
		if following {
			score += dishListFollowBoost
		}
		score += popularityBoost(d.FollowerCount, maxPopularityBoost)
	}

	score += recencyBoost(d.UpdatedAt, maxRecencyBoost, now)

	return models.ScoredDishList{
		DishList:       d,
		Score:          score,
		IsFollowing:    following,
		IsCollaborator: isCollaborator(d, sc.UserID),
	}
}

func isCollaborator(d models.DishList, uid string) bool {
	for _, c := range d.Collaborators {
		if c.UID == uid {
			return true
		}
	}
	return false
}

// bestCollaboratorScore returns the best single collaborator
// display-name match.
func bestCollaboratorScore(m *matcher, collaborators []models.User) float64 {
	var best float64
	for _, c := range collaborators {
		if s := m.score(c.FullName(), dishListCollaboratorWeights); s > best {
			best = s
		}
	}
	return best
}

// bestSampleTitleScore returns the best single contained-recipe-title
// match among the sampled recipes.
func bestSampleTitleScore(m *matcher, samples []models.RecipeSample) float64 {
	var best float64
	for _, r := range samples {
		if s := m.score(r.Title, dishListRecipeTitleWeights); s > best {
			best = s
		}
	}
	return best
}

// firstSampleIngredientScore scans sampled recipes in order and stops at
// the first recipe yielding any ingredient match, returning the best
// match within that recipe. Later recipes may hold stronger matches;
// the early exit is part of the ranking contract and must stay.
func firstSampleIngredientScore(m *matcher, samples []models.RecipeSample) float64 {
	for _, r := range samples {
		var best float64
		for _, ing := range r.Ingredients {
			if s := m.score(ing.Text, dishListIngredientWeights); s > best {
				best = s
			}
		}
		if best > 0 {
			return best
		}
	}
	return 0
}
