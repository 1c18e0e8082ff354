// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// SocialStore provides the social-graph reads the scorers depend on.
// Implemented by database.Store.
type SocialStore interface {
	// FollowingIDs returns the user ids the given user follows.
	FollowingIDs(ctx context.Context, uid string) ([]string, error)

	// FollowerIDs returns the user ids following the given user.
	FollowerIDs(ctx context.Context, uid string) ([]string, error)

	// FollowedDishListIDs returns the dishlist ids the user follows.
	FollowedDishListIDs(ctx context.Context, uid string) ([]string, error)

	// SavedRecipeIDs returns the recipe ids present in any dishlist the
	// user owns or collaborates on.
	SavedRecipeIDs(ctx context.Context, uid string) ([]string, error)
}

// SocialContext is the requester's social graph, loaded once per search
// request and read-only afterwards.
type SocialContext struct {
	UserID            string
	Following         map[string]bool
	Followers         map[string]bool
	FollowedDishLists map[string]bool
	SavedRecipes      map[string]bool
}

// IsMutual reports whether the requester and the given user follow
// each other.
func (sc *SocialContext) IsMutual(uid string) bool {
	return sc.Following[uid] && sc.Followers[uid]
}

// loadSocialContext issues the social-graph reads concurrently and
// waits for all of them. Scoring cannot start on a partial context, so
// any failed read fails the whole load.
func loadSocialContext(ctx context.Context, store SocialStore, uid string) (*SocialContext, error) {
	sc := &SocialContext{UserID: uid}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := store.FollowingIDs(ctx, uid)
		if err != nil {
			return fmt.Errorf("load following: %w", err)
		}
		sc.Following = toSet(ids)
		return nil
	})
	g.Go(func() error {
		ids, err := store.FollowerIDs(ctx, uid)
		if err != nil {
			return fmt.Errorf("load followers: %w", err)
		}
		sc.Followers = toSet(ids)
		return nil
	})
	g.Go(func() error {
		ids, err := store.FollowedDishListIDs(ctx, uid)
		if err != nil {
			return fmt.Errorf("load followed dishlists: %w", err)
		}
		sc.FollowedDishLists = toSet(ids)
		return nil
	})
	g.Go(func() error {
		ids, err := store.SavedRecipeIDs(ctx, uid)
		if err != nil {
			return fmt.Errorf("load saved recipes: %w", err)
		}
		sc.SavedRecipes = toSet(ids)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sc, nil
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
