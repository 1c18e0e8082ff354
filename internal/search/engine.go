// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package search

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dishlistapp/dishlist/internal/config"
	"github.com/dishlistapp/dishlist/internal/logging"
	"github.com/dishlistapp/dishlist/internal/models"
)

// Tab selects which result category a search request targets.
type Tab string

const (
	TabAll       Tab = "all"
	TabUsers     Tab = "users"
	TabRecipes   Tab = "recipes"
	TabDishLists Tab = "dishlists"
)

// ParseTab maps the raw query parameter to a Tab. An empty value
// defaults to TabAll; unrecognized values are passed through and land
// in the orchestrator's empty-result branch.
func ParseTab(s string) Tab {
	if s == "" {
		return TabAll
	}
	return Tab(s)
}

// Known reports whether t is one of the defined tabs.
func (t Tab) Known() bool {
	switch t {
	case TabAll, TabUsers, TabRecipes, TabDishLists:
		return true
	}
	return false
}

// Store is the data-access surface the engine depends on. Candidate
// queries return a superset of plausible matches; precise ranking and
// filtering happen in process. Access control is the store's job: user
// queries exclude the requester, recipe queries are restricted to
// recipes reachable through dishlists the requester can access, and
// dishlist queries apply the public/owned/collaborated/followed
// predicate.
type Store interface {
	SocialStore

	SearchUsers(ctx context.Context, query, requesterUID string, limit int) ([]models.User, error)
	SearchRecipes(ctx context.Context, query, requesterUID string, limit int) ([]models.Recipe, error)
	SearchDishLists(ctx context.Context, query, requesterUID string, limit int) ([]models.DishList, error)
}

// Params are the inputs of one search request.
type Params struct {
	Query  string
	Tab    Tab
	Cursor string // id of the last result from a prior page, "" for the first page
	Limit  int
}

const defaultPageLimit = 20

// Engine scores and ranks search candidates. It holds no per-request
// state; a single Engine serves all requests concurrently.
type Engine struct {
	store Store
	cfg   config.SearchConfig
	now   func() time.Time
}

// NewEngine creates a search engine over the given store.
func NewEngine(store Store, cfg config.SearchConfig) *Engine {
	return &Engine{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Search executes one search request. An empty query returns empty
// result sets without touching the store; so does an unknown tab.
func (e *Engine) Search(ctx context.Context, requesterUID string, p Params) (*models.SearchResponse, error) {
	m := newMatcher(p.Query)
	if m.empty() {
		return models.EmptySearchResponse(), nil
	}

	if !p.Tab.Known() {
		logging.Ctx(ctx).Debug().Str("tab", string(p.Tab)).Msg("unknown search tab")
		return models.EmptySearchResponse(), nil
	}

	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}

	sc, err := loadSocialContext(ctx, e.store, requesterUID)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if p.Tab == TabAll {
		return e.searchAll(ctx, m, sc)
	}
	return e.searchCategory(ctx, m, sc, p)
}

// searchAll runs the three category searches concurrently, each capped
// at the all-tab preview size. The combined tab never paginates, so
// NextCursor stays nil. Cross-category normalization multipliers are
// applied after scoring and thresholding, so the blend for display does
// not retroactively change which candidates qualified.
func (e *Engine) searchAll(ctx context.Context, m *matcher, sc *SocialContext) (*models.SearchResponse, error) {
	resp := models.EmptySearchResponse()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, _, err := e.searchUsers(ctx, m, sc, true, "", e.cfg.AllTabLimit)
		if err != nil {
			return err
		}
		for i := range users {
			users[i].Score *= e.cfg.UserMultiplier
		}
		resp.Users = users
		return nil
	})
	g.Go(func() error {
		recipes, _, err := e.searchRecipes(ctx, m, sc, true, "", e.cfg.AllTabLimit)
		if err != nil {
			return err
		}
		for i := range recipes {
			recipes[i].Score *= e.cfg.RecipeMultiplier
		}
		resp.Recipes = recipes
		return nil
	})
	g.Go(func() error {
		lists, _, err := e.searchDishLists(ctx, m, sc, true, "", e.cfg.AllTabLimit)
		if err != nil {
			return err
		}
		for i := range lists {
			lists[i].Score *= e.cfg.DishListMultiplier
		}
		resp.DishLists = lists
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search all: %w", err)
	}
	return resp, nil
}

func (e *Engine) searchCategory(ctx context.Context, m *matcher, sc *SocialContext, p Params) (*models.SearchResponse, error) {
	resp := models.EmptySearchResponse()
	var err error

	switch p.Tab {
	case TabUsers:
		resp.Users, resp.NextCursor, err = e.searchUsers(ctx, m, sc, false, p.Cursor, p.Limit)
	case TabRecipes:
		resp.Recipes, resp.NextCursor, err = e.searchRecipes(ctx, m, sc, false, p.Cursor, p.Limit)
	case TabDishLists:
		resp.DishLists, resp.NextCursor, err = e.searchDishLists(ctx, m, sc, false, p.Cursor, p.Limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", p.Tab, err)
	}
	return resp, nil
}

// searchUsers fetches, scores, filters, sorts, and paginates user
// candidates. Thresholds and boost gates evaluate the raw score;
// all-tab normalization happens in the caller.
func (e *Engine) searchUsers(ctx context.Context, m *matcher, sc *SocialContext, allTab bool, cursor string, limit int) ([]models.ScoredUser, *string, error) {
	candidates, err := e.store.SearchUsers(ctx, m.query, sc.UserID, e.cfg.MaxCandidates)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch user candidates: %w", err)
	}

	minScore := e.cfg.UserMinScore
	if allTab {
		minScore = e.cfg.UserMinScoreAll
	}

	scored := make([]models.ScoredUser, 0, len(candidates))
	for _, u := range candidates {
		if u.UID == sc.UserID {
			continue
		}
		s := scoreUser(m, u, sc, allTab)
		if s.Score >= minScore {
			scored = append(scored, s)
		}
	}

	// Followed users rank first on the dedicated tab only; the username
	// tie-break keeps pagination cursors stable across requests.
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !allTab && a.IsFollowing != b.IsFollowing {
			return a.IsFollowing
		}
		if a.Username != b.Username {
			return a.Username < b.Username
		}
		return a.UID < b.UID
	})

	page, next := paginate(scored, func(u models.ScoredUser) string { return u.UID }, cursor, limit)
	return page, next, nil
}

func (e *Engine) searchRecipes(ctx context.Context, m *matcher, sc *SocialContext, allTab bool, cursor string, limit int) ([]models.ScoredRecipe, *string, error) {
	candidates, err := e.store.SearchRecipes(ctx, m.query, sc.UserID, e.cfg.MaxCandidates)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch recipe candidates: %w", err)
	}

	now := e.now()
	scored := make([]models.ScoredRecipe, 0, len(candidates))
	for _, r := range candidates {
		s := scoreRecipe(m, r, sc, allTab, now)
		if s.Score >= e.cfg.RecipeMinScore {
			scored = append(scored, s)
		}
	}

	sortByScoreThenID(scored, func(r models.ScoredRecipe) (float64, string) { return r.Score, r.ID })

	page, next := paginate(scored, func(r models.ScoredRecipe) string { return r.ID }, cursor, limit)
	return page, next, nil
}

func (e *Engine) searchDishLists(ctx context.Context, m *matcher, sc *SocialContext, allTab bool, cursor string, limit int) ([]models.ScoredDishList, *string, error) {
	candidates, err := e.store.SearchDishLists(ctx, m.query, sc.UserID, e.cfg.MaxCandidates)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch dishlist candidates: %w", err)
	}

	minScore := e.cfg.DishListMinScore
	if allTab {
		minScore = e.cfg.DishListMinScoreAll
	}

	now := e.now()
	scored := make([]models.ScoredDishList, 0, len(candidates))
	for _, d := range candidates {
		s := scoreDishList(m, d, sc, allTab, now)
		if s.Score >= minScore {
			scored = append(scored, s)
		}
	}

	sortByScoreThenID(scored, func(d models.ScoredDishList) (float64, string) { return d.Score, d.ID })

	page, next := paginate(scored, func(d models.ScoredDishList) string { return d.ID }, cursor, limit)
	return page, next, nil
}

// sortByScoreThenID orders by score descending, then id ascending. The
// id tie-break is arbitrary but deterministic, which keeps pagination
// cursors stable when scores tie.
func sortByScoreThenID[T any](items []T, key func(T) (float64, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		si, idi := key(items[i])
		sj, idj := key(items[j])
		if si != sj {
			return si > sj
		}
		return idi < idj
	})
}

// paginate slices the sorted result list after the cursor position.
// Pagination is stateless: every page request re-fetches and re-scores
// everything, then seeks the cursor. A stale cursor (the item no longer
// matches) falls back to the first page.
func paginate[T any](items []T, id func(T) string, cursor string, limit int) ([]T, *string) {
	start := 0
	if cursor != "" {
		for i, item := range items {
			if id(item) == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	hasMore := len(items) > end
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	var next *string
	if hasMore && len(page) > 0 {
		last := id(page[len(page)-1])
		next = &last
	}
	return page, next
}
