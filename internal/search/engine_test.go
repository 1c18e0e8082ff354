// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package search

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dishlistapp/dishlist/internal/config"
	"github.com/dishlistapp/dishlist/internal/models"
)

// fakeStore serves fixed candidate and social-graph data and counts
// every store call, so tests can assert the no-query short circuit.
type fakeStore struct {
	users     []models.User
	recipes   []models.Recipe
	dishLists []models.DishList

	following     []string
	followers     []string
	followedLists []string
	savedRecipes  []string

	calls atomic.Int64
}

func (f *fakeStore) SearchUsers(_ context.Context, _, _ string, _ int) ([]models.User, error) {
	f.calls.Add(1)
	return f.users, nil
}

func (f *fakeStore) SearchRecipes(_ context.Context, _, _ string, _ int) ([]models.Recipe, error) {
	f.calls.Add(1)
	return f.recipes, nil
}

func (f *fakeStore) SearchDishLists(_ context.Context, _, _ string, _ int) ([]models.DishList, error) {
	f.calls.Add(1)
	return f.dishLists, nil
}

func (f *fakeStore) FollowingIDs(_ context.Context, _ string) ([]string, error) {
	f.calls.Add(1)
	return f.following, nil
}

func (f *fakeStore) FollowerIDs(_ context.Context, _ string) ([]string, error) {
	f.calls.Add(1)
	return f.followers, nil
}

func (f *fakeStore) FollowedDishListIDs(_ context.Context, _ string) ([]string, error) {
	f.calls.Add(1)
	return f.followedLists, nil
}

func (f *fakeStore) SavedRecipeIDs(_ context.Context, _ string) ([]string, error) {
	f.calls.Add(1)
	return f.savedRecipes, nil
}

// failingStore fails every read.
type failingStore struct{ fakeStore }

func (f *failingStore) FollowingIDs(_ context.Context, _ string) ([]string, error) {
	return nil, fmt.Errorf("connection refused")
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		AllTabLimit:         10,
		MaxCandidates:       200,
		UserMultiplier:      1.0,
		RecipeMultiplier:    0.9,
		DishListMultiplier:  0.95,
		UserMinScoreAll:     30,
		UserMinScore:        40,
		RecipeMinScore:      30,
		DishListMinScoreAll: 30,
		DishListMinScore:    35,
	}
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// stale is any timestamp outside the 30-day recency window.
var stale = testNow.AddDate(0, 0, -90)

func newTestEngine(store Store) *Engine {
	e := NewEngine(store, testSearchConfig())
	e.now = func() time.Time { return testNow }
	return e
}

func TestSearchEmptyQueryShortCircuit(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	e := newTestEngine(store)

	for _, query := range []string{"", "   "} {
		resp, err := e.Search(context.Background(), "me", Params{Query: query, Tab: TabAll})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Users) != 0 || len(resp.Recipes) != 0 || len(resp.DishLists) != 0 {
			t.Errorf("expected empty results for query %q", query)
		}
		if resp.Users == nil || resp.Recipes == nil || resp.DishLists == nil {
			t.Error("result slices must be non-nil empty arrays")
		}
		if resp.NextCursor != nil {
			t.Error("expected nil nextCursor")
		}
	}

	if got := store.calls.Load(); got != 0 {
		t.Errorf("expected zero store calls for empty query, got %d", got)
	}
}

func TestSearchUnknownTab(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "pasta", Tab: Tab("bogus")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Users)+len(resp.Recipes)+len(resp.DishLists) != 0 {
		t.Error("expected empty results for unknown tab")
	}
	if got := store.calls.Load(); got != 0 {
		t.Errorf("expected zero store calls for unknown tab, got %d", got)
	}
}

func TestSearchSocialContextFailure(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&failingStore{})

	_, err := e.Search(context.Background(), "me", Params{Query: "pasta", Tab: TabUsers})
	if err == nil {
		t.Fatal("expected error when social context load fails")
	}
}

func TestSearchUsersSelfExclusion(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		users: []models.User{
			{UID: "me", Username: "anna"},
			{UID: "u2", Username: "annabelle"},
		},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "anna", Tab: TabUsers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, u := range resp.Users {
		if u.UID == "me" {
			t.Error("results must never include the requester")
		}
	}
	if len(resp.Users) != 1 || resp.Users[0].UID != "u2" {
		t.Errorf("expected only u2, got %+v", resp.Users)
	}
}

func TestSearchUsersThresholdEnforcement(t *testing.T) {
	t.Parallel()

	// A followed user whose name does not match at all scores only the
	// one-way bonus (30) on the dedicated tab, below the 40 threshold.
	store := &fakeStore{
		users: []models.User{
			{UID: "u1", Username: "totally_unrelated", FirstName: "Bob"},
			{UID: "u2", Username: "anna"},
		},
		following: []string{"u1"},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "anna", Tab: TabUsers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].UID != "u2" {
		t.Errorf("expected only the text match, got %+v", resp.Users)
	}
}

func TestSearchUsersExactUsernameMutual(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		users:     []models.User{{UID: "u1", Username: "chef_anna", FirstName: "Anna", LastName: "Lee"}},
		following: []string{"u1"},
		followers: []string{"u1"},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "chef_anna", Tab: TabUsers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Users) != 1 {
		t.Fatalf("expected one result, got %d", len(resp.Users))
	}
	got := resp.Users[0]
	// 100 exact username + 40 mutual on the dedicated tab.
	if got.Score != 140 {
		t.Errorf("score = %v, want 140", got.Score)
	}
	if !got.IsMutual || !got.IsFollowing {
		t.Errorf("expected mutual flags, got %+v", got)
	}
}

func TestSearchUsersTieBreakUsername(t *testing.T) {
	t.Parallel()

	// Equal scores break alphabetically by username; an empty username
	// sorts before any non-empty one.
	store := &fakeStore{
		users: []models.User{
			{UID: "u1", Username: "zoe", FirstName: "Pat", LastName: "Smith"},
			{UID: "u2", Username: "", FirstName: "Pat", LastName: "Smith"},
			{UID: "u3", Username: "abe", FirstName: "Pat", LastName: "Smith"},
		},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "pat smith", Tab: TabUsers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Users) != 3 {
		t.Fatalf("expected three results, got %d", len(resp.Users))
	}
	order := []string{resp.Users[0].UID, resp.Users[1].UID, resp.Users[2].UID}
	want := []string{"u2", "u3", "u1"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestSearchUsersFollowedRankFirst(t *testing.T) {
	t.Parallel()

	// On the dedicated tab the follow bonus is unconditional, so a
	// followed prefix match outranks an unfollowed exact match.
	store := &fakeStore{
		users: []models.User{
			{UID: "u1", Username: "anna"},
			{UID: "u2", Username: "annabelle"},
		},
		following: []string{"u2"},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "anna", Tab: TabUsers})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected two results, got %d", len(resp.Users))
	}
	// u2: 70 startsWith + 30 follow = 100; u1: 100 exact.
	// Scores tie at 100, follow breaks the tie on the dedicated tab.
	if resp.Users[0].UID != "u2" {
		t.Errorf("expected followed user first, got %v", resp.Users[0].UID)
	}
}

func TestSearchRecipesTitleOutranksDescription(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		recipes: []models.Recipe{
			{ID: "r1", Title: "Chicken Curry", UpdatedAt: stale},
			{ID: "r2", Title: "Leftover Surprise", Description: "leftover chicken today", UpdatedAt: stale},
		},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "chicken", Tab: TabRecipes})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The title match (90) passes the 30 threshold; the description-only
	// match (18) does not.
	if len(resp.Recipes) != 1 || resp.Recipes[0].ID != "r1" {
		t.Fatalf("expected only the title match, got %+v", resp.Recipes)
	}
	if resp.Recipes[0].Score != 90 {
		t.Errorf("score = %v, want 90", resp.Recipes[0].Score)
	}
}

func TestSearchRecipesPagination(t *testing.T) {
	t.Parallel()

	recipes := make([]models.Recipe, 5)
	for i := range recipes {
		recipes[i] = models.Recipe{
			ID:        fmt.Sprintf("r%02d", i+1),
			Title:     "Chicken Curry",
			UpdatedAt: stale,
		}
	}
	store := &fakeStore{recipes: recipes}
	e := newTestEngine(store)
	ctx := context.Background()

	page1, err := e.Search(ctx, "me", Params{Query: "chicken", Tab: TabRecipes, Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(page1.Recipes); !equalStrings(got, []string{"r01", "r02"}) {
		t.Fatalf("page 1 = %v", got)
	}
	if page1.NextCursor == nil || *page1.NextCursor != "r02" {
		t.Fatalf("page 1 nextCursor = %v, want r02", page1.NextCursor)
	}

	page2, err := e.Search(ctx, "me", Params{Query: "chicken", Tab: TabRecipes, Limit: 2, Cursor: *page1.NextCursor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(page2.Recipes); !equalStrings(got, []string{"r03", "r04"}) {
		t.Fatalf("page 2 = %v", got)
	}
	if page2.NextCursor == nil || *page2.NextCursor != "r04" {
		t.Fatalf("page 2 nextCursor = %v, want r04", page2.NextCursor)
	}

	page3, err := e.Search(ctx, "me", Params{Query: "chicken", Tab: TabRecipes, Limit: 2, Cursor: *page2.NextCursor})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(page3.Recipes); !equalStrings(got, []string{"r05"}) {
		t.Fatalf("page 3 = %v", got)
	}
	if page3.NextCursor != nil {
		t.Fatalf("page 3 nextCursor = %v, want nil", *page3.NextCursor)
	}
}

func TestSearchRecipesStaleCursor(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		recipes: []models.Recipe{
			{ID: "r1", Title: "Chicken Curry", UpdatedAt: stale},
			{ID: "r2", Title: "Chicken Soup", UpdatedAt: stale},
		},
	}
	e := newTestEngine(store)

	// The cursor references a deleted recipe; fall back to page one.
	resp, err := e.Search(context.Background(), "me", Params{Query: "chicken", Tab: TabRecipes, Limit: 2, Cursor: "gone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ids(resp.Recipes); !equalStrings(got, []string{"r1", "r2"}) {
		t.Errorf("expected first page on stale cursor, got %v", got)
	}
}

func TestSearchAllTab(t *testing.T) {
	t.Parallel()

	users := make([]models.User, 15)
	for i := range users {
		users[i] = models.User{UID: fmt.Sprintf("u%02d", i+1), Username: "pasta"}
	}
	store := &fakeStore{
		users: users,
		recipes: []models.Recipe{
			{ID: "r1", Title: "Pasta", UpdatedAt: stale},
		},
		dishLists: []models.DishList{
			{ID: "d1", Title: "Pasta", Owner: models.User{UID: "owner1"}, UpdatedAt: stale},
		},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "pasta", Tab: TabAll})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Users) != 10 {
		t.Errorf("all tab users = %d, want capped at 10", len(resp.Users))
	}
	if resp.NextCursor != nil {
		t.Error("all tab must not paginate")
	}

	// Normalization multipliers apply after scoring: recipes ×0.9,
	// dishlists ×0.95, users ×1.0.
	if len(resp.Recipes) != 1 || math.Abs(resp.Recipes[0].Score-90) > 1e-9 {
		t.Errorf("recipe score = %+v, want 90 after 0.9 multiplier", resp.Recipes)
	}
	if len(resp.DishLists) != 1 || math.Abs(resp.DishLists[0].Score-95) > 1e-9 {
		t.Errorf("dishlist score = %+v, want 95 after 0.95 multiplier", resp.DishLists)
	}
	if resp.Users[0].Score != 100 {
		t.Errorf("user score = %v, want 100", resp.Users[0].Score)
	}
}

func TestSearchAllTabGateUsesRawScore(t *testing.T) {
	t.Parallel()

	// The social-boost gate evaluates the raw pre-normalization score.
	// A recipe with a raw tag match of exactly 50 qualifies for the
	// saved bonus even though its normalized score lands below 50.
	store := &fakeStore{
		recipes: []models.Recipe{
			{ID: "r1", Title: "Weeknight Bowl", Tags: []string{"vegan"}, UpdatedAt: stale},
		},
		savedRecipes: []string{"r1"},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "vegan", Tab: TabAll})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Recipes) != 1 {
		t.Fatalf("expected one recipe, got %d", len(resp.Recipes))
	}
	// (50 tag + 10 saved) * 0.9 = 54.
	if got := resp.Recipes[0].Score; math.Abs(got-54) > 1e-9 {
		t.Errorf("score = %v, want 54", got)
	}
}

func TestSearchDishListsDedicatedTab(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		dishLists: []models.DishList{
			{ID: "d1", Title: "Taco Night", Owner: models.User{UID: "owner1"}, UpdatedAt: stale},
			{ID: "d2", Title: "Taco Night", Owner: models.User{UID: "owner2"}, UpdatedAt: stale},
		},
		followedLists: []string{"d2"},
	}
	e := newTestEngine(store)

	resp, err := e.Search(context.Background(), "me", Params{Query: "taco night", Tab: TabDishLists})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.DishLists) != 2 {
		t.Fatalf("expected two results, got %d", len(resp.DishLists))
	}
	// d2: 100 exact + 20 follow = 120 outranks d1: 100.
	if resp.DishLists[0].ID != "d2" || resp.DishLists[0].Score != 120 {
		t.Errorf("first = %v score %v, want d2 at 120", resp.DishLists[0].ID, resp.DishLists[0].Score)
	}
	if !resp.DishLists[0].IsFollowing {
		t.Error("expected IsFollowing on followed list")
	}
	// Only the targeted tab's array is populated.
	if len(resp.Users) != 0 || len(resp.Recipes) != 0 {
		t.Error("dedicated tab must leave other arrays empty")
	}
}

func ids(items []models.ScoredRecipe) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
