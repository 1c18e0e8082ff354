// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package search

import (
	"github.com/dishlistapp/dishlist/internal/models"
)

// User tab social bonuses. The combined tab uses the smaller pair and
// gates them on text relevance; the dedicated tab applies the larger
// pair unconditionally, since a user browsing the Users tab values
// their social graph more than raw text relevance.
const (
	userMutualBoostAll = 20
	userFollowBoostAll = 15
	userMutualBoost    = 40
	userFollowBoost    = 30
)

// scoreUser computes the relevance of a candidate user. Name and
// username are independent fields, so their match scores add.
func scoreUser(m *matcher, u models.User, sc *SocialContext, allTab bool) models.ScoredUser {
	score := m.score(u.FullName(), userNameWeights)
	score += m.score(u.Username, userUsernameWeights)

	following := sc.Following[u.UID]
	mutual := sc.IsMutual(u.UID)

	if allTab {
		if score >= socialBoostGate {
			switch {
			case mutual:
				score += userMutualBoostAll
			case following:
				score += userFollowBoostAll
			}
		}
	} else {
		switch {
		case mutual:
			score += userMutualBoost
		case following:
			score += userFollowBoost
		}
	}

	return models.ScoredUser{
		User:        u,
		Score:       score,
		IsFollowing: following,
		IsMutual:    mutual,
	}
}
