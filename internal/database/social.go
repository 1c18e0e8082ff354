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
)

// FollowingIDs returns the user ids the given user follows.
func (db *DB) FollowingIDs(ctx context.Context, uid string) ([]string, error) {
	return db.queryIDs(ctx, "following_ids",
		`SELECT following_uid FROM follows WHERE follower_uid = ?`, uid)
}

// FollowerIDs returns the user ids following the given user.
func (db *DB) FollowerIDs(ctx context.Context, uid string) ([]string, error) {
	return db.queryIDs(ctx, "follower_ids",
		`SELECT follower_uid FROM follows WHERE following_uid = ?`, uid)
}

// FollowedDishListIDs returns the dishlist ids the user follows.
func (db *DB) FollowedDishListIDs(ctx context.Context, uid string) ([]string, error) {
	return db.queryIDs(ctx, "followed_dishlist_ids",
		`SELECT dishlist_id FROM dishlist_followers WHERE user_uid = ?`, uid)
}

// SavedRecipeIDs returns the recipe ids present in any dishlist the
// user owns or collaborates on.
func (db *DB) SavedRecipeIDs(ctx context.Context, uid string) ([]string, error) {
	return db.queryIDs(ctx, "saved_recipe_ids",
		`SELECT DISTINCT dr.recipe_id
		 FROM dishlist_recipes dr
		 JOIN dishlists d ON d.id = dr.dishlist_id
		 WHERE d.owner_uid = ?
		    OR EXISTS (
		        SELECT 1 FROM dishlist_collaborators dc
		        WHERE dc.dishlist_id = d.id AND dc.user_uid = ?
		    )`, uid, uid)
}

// AddFollow records a follow edge from follower to following.
func (db *DB) AddFollow(ctx context.Context, followerUID, followingUID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO follows (follower_uid, following_uid) VALUES (?, ?)`,
		followerUID, followingUID)
	if err != nil {
		return fmt.Errorf("failed to add follow: %w", err)
	}
	return nil
}

// FollowDishList records that a user follows a dishlist.
func (db *DB) FollowDishList(ctx context.Context, uid, dishListID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO dishlist_followers (dishlist_id, user_uid) VALUES (?, ?)`,
		dishListID, uid)
	if err != nil {
		return fmt.Errorf("failed to follow dishlist: %w", err)
	}
	return nil
}

// PinDishList records a per-user pin on a dishlist.
func (db *DB) PinDishList(ctx context.Context, uid, dishListID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO dishlist_pins (user_uid, dishlist_id) VALUES (?, ?)`,
		uid, dishListID)
	if err != nil {
		return fmt.Errorf("failed to pin dishlist: %w", err)
	}
	return nil
}

// queryIDs runs a single-column id query through the circuit breaker.
func (db *DB) queryIDs(ctx context.Context, operation, query string, args ...any) ([]string, error) {
	return guarded(db.breaker, func() ([]string, error) {
		start := time.Now()
		ids, err := db.scanIDs(ctx, query, args...)
		metrics.ObserveDBQuery(operation, start, err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		return ids, nil
	})
}

func (db *DB) scanIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	stmt, err := db.getOrPrepareStmt(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(rows)

	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
