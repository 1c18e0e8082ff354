// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/dishlistapp/dishlist/internal/metrics"
	"github.com/dishlistapp/dishlist/internal/models"
)

// DishListFilter selects which dishlists a listing returns. Each
// variant is a distinct type so the query switch is exhaustive at
// compile time instead of assembling loosely-typed where clauses.
type DishListFilter interface {
	dishListFilter()
}

// FilterAll returns every dishlist the user can access.
type FilterAll struct{}

// FilterMine returns dishlists the user owns.
type FilterMine struct{}

// FilterCollaborations returns dishlists the user collaborates on but
// does not own.
type FilterCollaborations struct{}

// FilterFollowing returns dishlists the user follows.
type FilterFollowing struct{}

func (FilterAll) dishListFilter()            {}
func (FilterMine) dishListFilter()           {}
func (FilterCollaborations) dishListFilter() {}
func (FilterFollowing) dishListFilter()      {}

// ParseDishListFilter maps the raw query parameter to a filter variant.
func ParseDishListFilter(s string) (DishListFilter, error) {
	switch s {
	case "", "all":
		return FilterAll{}, nil
	case "mine":
		return FilterMine{}, nil
	case "collaborations":
		return FilterCollaborations{}, nil
	case "following":
		return FilterFollowing{}, nil
	default:
		return nil, fmt.Errorf("unknown dishlist filter %q", s)
	}
}

// ListDishLists returns the user's dishlists under the given filter,
// pinned lists first, then most recently updated. Collaborators and
// sample recipes are attached the same way search candidates get them.
func (db *DB) ListDishLists(ctx context.Context, uid string, filter DishListFilter, limit int) ([]models.DishList, error) {
	return guarded(db.breaker, func() ([]models.DishList, error) {
		start := time.Now()
		lists, err := db.listDishLists(ctx, uid, filter, limit)
		metrics.ObserveDBQuery("list_dishlists", start, err)
		return lists, err
	})
}

func (db *DB) listDishLists(ctx context.Context, uid string, filter DishListFilter, limit int) ([]models.DishList, error) {
	var predicate string
	var args []any

	switch filter.(type) {
	case FilterAll:
		predicate = dishListAccessPredicate
		args = []any{uid, uid, uid}
	case FilterMine:
		predicate = `d.owner_uid = ?`
		args = []any{uid}
	case FilterCollaborations:
		predicate = `d.owner_uid <> ?
			AND EXISTS (SELECT 1 FROM dishlist_collaborators dc WHERE dc.dishlist_id = d.id AND dc.user_uid = ?)`
		args = []any{uid, uid}
	case FilterFollowing:
		predicate = `EXISTS (SELECT 1 FROM dishlist_followers df WHERE df.dishlist_id = d.id AND df.user_uid = ?)`
		args = []any{uid}
	default:
		return nil, fmt.Errorf("unhandled dishlist filter %T", filter)
	}

	q := `
		SELECT d.id, d.title, d.description, d.visibility, d.updated_at,
		       o.uid, o.username, o.first_name, o.last_name, o.avatar_url,
		       (SELECT COUNT(*) FROM dishlist_followers df WHERE df.dishlist_id = d.id) AS follower_count,
		       (SELECT COUNT(*) FROM dishlist_recipes dr WHERE dr.dishlist_id = d.id) AS recipe_count,
		       EXISTS (SELECT 1 FROM dishlist_pins p WHERE p.dishlist_id = d.id AND p.user_uid = ?) AS pinned
		FROM dishlists d
		JOIN users o ON o.uid = d.owner_uid
		WHERE ` + predicate + `
		ORDER BY pinned DESC, d.updated_at DESC, d.id
		LIMIT ?`

	queryArgs := append([]any{uid}, args...)
	queryArgs = append(queryArgs, limit)

	stmt, err := db.getOrPrepareStmt(ctx, q)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishlists: %w", err)
	}
	defer closeQuietly(rows)

	lists := make([]models.DishList, 0, 16)
	for rows.Next() {
		var d models.DishList
		var pinned bool
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Visibility, &d.UpdatedAt,
			&d.Owner.UID, &d.Owner.Username, &d.Owner.FirstName, &d.Owner.LastName, &d.Owner.AvatarURL,
			&d.FollowerCount, &d.RecipeCount, &pinned,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dishlist: %w", err)
		}
		lists = append(lists, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.loadDishListDetails(ctx, lists); err != nil {
		return nil, err
	}
	return lists, nil
}
