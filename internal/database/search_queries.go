// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dishlistapp/dishlist/internal/metrics"
	"github.com/dishlistapp/dishlist/internal/models"
)

// likeEscaper neutralizes LIKE wildcards in user-supplied query text.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for ILIKE
// with ESCAPE '\'.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(query)) + "%"
}

// dishListAccessPredicate is the visibility filter for dishlists: a
// list is accessible when it is public, or the user owns it,
// collaborates on it, or follows it. Takes three uid arguments.
const dishListAccessPredicate = `(
	d.visibility = 'PUBLIC'
	OR d.owner_uid = ?
	OR EXISTS (SELECT 1 FROM dishlist_collaborators dc WHERE dc.dishlist_id = d.id AND dc.user_uid = ?)
	OR EXISTS (SELECT 1 FROM dishlist_followers df WHERE df.dishlist_id = d.id AND df.user_uid = ?)
)`

// SearchUsers returns users whose username or name contains the query,
// excluding the requester. The result is a candidate superset; precise
// ranking happens in the search package.
func (db *DB) SearchUsers(ctx context.Context, query, requesterUID string, limit int) ([]models.User, error) {
	return guarded(db.breaker, func() ([]models.User, error) {
		start := time.Now()
		users, err := db.searchUsers(ctx, query, requesterUID, limit)
		metrics.ObserveDBQuery("search_users", start, err)
		return users, err
	})
}

func (db *DB) searchUsers(ctx context.Context, query, requesterUID string, limit int) ([]models.User, error) {
	const q = `
		SELECT uid, username, first_name, last_name, avatar_url
		FROM users
		WHERE uid <> ?
		  AND (
			username ILIKE ? ESCAPE '\'
			OR first_name ILIKE ? ESCAPE '\'
			OR last_name ILIKE ? ESCAPE '\'
			OR (first_name || ' ' || last_name) ILIKE ? ESCAPE '\'
		  )
		ORDER BY uid
		LIMIT ?`

	stmt, err := db.getOrPrepareStmt(ctx, q)
	if err != nil {
		return nil, err
	}

	p := likePattern(query)
	rows, err := stmt.QueryContext(ctx, requesterUID, p, p, p, p, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer closeQuietly(rows)

	users := make([]models.User, 0, 32)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.UID, &u.Username, &u.FirstName, &u.LastName, &u.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SearchRecipes returns recipes matching the query on any searchable
// field, restricted to recipes reachable through a dishlist the
// requester can access.
func (db *DB) SearchRecipes(ctx context.Context, query, requesterUID string, limit int) ([]models.Recipe, error) {
	return guarded(db.breaker, func() ([]models.Recipe, error) {
		start := time.Now()
		recipes, err := db.searchRecipes(ctx, query, requesterUID, limit)
		metrics.ObserveDBQuery("search_recipes", start, err)
		return recipes, err
	})
}

func (db *DB) searchRecipes(ctx context.Context, query, requesterUID string, limit int) ([]models.Recipe, error) {
	q := `
		SELECT r.id, r.title, r.description, r.image_url, r.prep_time, r.cook_time, r.servings, r.updated_at,
		       u.uid, u.username, u.first_name, u.last_name, u.avatar_url
		FROM recipes r
		JOIN users u ON u.uid = r.creator_uid
		WHERE r.id IN (
			SELECT dr.recipe_id
			FROM dishlist_recipes dr
			JOIN dishlists d ON d.id = dr.dishlist_id
			WHERE ` + dishListAccessPredicate + `
		)
		AND (
			r.title ILIKE ? ESCAPE '\'
			OR r.description ILIKE ? ESCAPE '\'
			OR EXISTS (SELECT 1 FROM recipe_tags t WHERE t.recipe_id = r.id AND t.tag ILIKE ? ESCAPE '\')
			OR EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id AND ri.item_text ILIKE ? ESCAPE '\')
			OR u.username ILIKE ? ESCAPE '\'
			OR (u.first_name || ' ' || u.last_name) ILIKE ? ESCAPE '\'
		)
		ORDER BY r.id
		LIMIT ?`

	stmt, err := db.getOrPrepareStmt(ctx, q)
	if err != nil {
		return nil, err
	}

	p := likePattern(query)
	rows, err := stmt.QueryContext(ctx, requesterUID, requesterUID, requesterUID, p, p, p, p, p, p, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	defer closeQuietly(rows)

	recipes := make([]models.Recipe, 0, 32)
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Description, &r.ImageURL, &r.PrepTime, &r.CookTime, &r.Servings, &r.UpdatedAt,
			&r.Creator.UID, &r.Creator.Username, &r.Creator.FirstName, &r.Creator.LastName, &r.Creator.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.loadRecipeDetails(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// loadRecipeDetails fills Tags and Ingredients for the given recipes in
// two batched queries, preserving authored order.
func (db *DB) loadRecipeDetails(ctx context.Context, recipes []models.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	index := make(map[string]*models.Recipe, len(recipes))
	ids := make([]any, 0, len(recipes))
	for i := range recipes {
		index[recipes[i].ID] = &recipes[i]
		ids = append(ids, recipes[i].ID)
	}
	in := placeholders(len(ids))

	tagRows, err := db.conn.QueryContext(ctx,
		`SELECT recipe_id, tag FROM recipe_tags WHERE recipe_id IN (`+in+`) ORDER BY recipe_id, position`, ids...)
	if err != nil {
		return fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer closeQuietly(tagRows)

	for tagRows.Next() {
		var recipeID, tag string
		if err := tagRows.Scan(&recipeID, &tag); err != nil {
			return fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		if r, ok := index[recipeID]; ok {
			r.Tags = append(r.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	ingRows, err := db.conn.QueryContext(ctx,
		`SELECT recipe_id, item_type, item_text FROM recipe_ingredients WHERE recipe_id IN (`+in+`) ORDER BY recipe_id, position`, ids...)
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer closeQuietly(ingRows)

	for ingRows.Next() {
		var recipeID string
		var ing models.Ingredient
		if err := ingRows.Scan(&recipeID, &ing.Type, &ing.Text); err != nil {
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		if r, ok := index[recipeID]; ok {
			r.Ingredients = append(r.Ingredients, ing)
		}
	}
	return ingRows.Err()
}

// SearchDishLists returns accessible dishlists matching the query on
// title, description, owner fields, or contained recipe titles, with
// collaborators and up to sampleRecipeLimit contained recipes attached.
func (db *DB) SearchDishLists(ctx context.Context, query, requesterUID string, limit int) ([]models.DishList, error) {
	return guarded(db.breaker, func() ([]models.DishList, error) {
		start := time.Now()
		lists, err := db.searchDishLists(ctx, query, requesterUID, limit)
		metrics.ObserveDBQuery("search_dishlists", start, err)
		return lists, err
	})
}

const sampleRecipeLimit = 10

func (db *DB) searchDishLists(ctx context.Context, query, requesterUID string, limit int) ([]models.DishList, error) {
	q := `
		SELECT d.id, d.title, d.description, d.visibility, d.updated_at,
		       o.uid, o.username, o.first_name, o.last_name, o.avatar_url,
		       (SELECT COUNT(*) FROM dishlist_followers df WHERE df.dishlist_id = d.id) AS follower_count,
		       (SELECT COUNT(*) FROM dishlist_recipes dr WHERE dr.dishlist_id = d.id) AS recipe_count
		FROM dishlists d
		JOIN users o ON o.uid = d.owner_uid
		WHERE ` + dishListAccessPredicate + `
		AND (
			d.title ILIKE ? ESCAPE '\'
			OR d.description ILIKE ? ESCAPE '\'
			OR o.username ILIKE ? ESCAPE '\'
			OR (o.first_name || ' ' || o.last_name) ILIKE ? ESCAPE '\'
			OR EXISTS (
				SELECT 1 FROM dishlist_recipes dr
				JOIN recipes r ON r.id = dr.recipe_id
				WHERE dr.dishlist_id = d.id AND r.title ILIKE ? ESCAPE '\'
			)
		)
		ORDER BY d.id
		LIMIT ?`

	stmt, err := db.getOrPrepareStmt(ctx, q)
	if err != nil {
		return nil, err
	}

	p := likePattern(query)
	rows, err := stmt.QueryContext(ctx, requesterUID, requesterUID, requesterUID, p, p, p, p, p, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search dishlists: %w", err)
	}
	defer closeQuietly(rows)

	lists := make([]models.DishList, 0, 32)
	for rows.Next() {
		var d models.DishList
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Visibility, &d.UpdatedAt,
			&d.Owner.UID, &d.Owner.Username, &d.Owner.FirstName, &d.Owner.LastName, &d.Owner.AvatarURL,
			&d.FollowerCount, &d.RecipeCount,
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

// loadDishListDetails fills Collaborators and SampleRecipes for the
// given dishlists.
func (db *DB) loadDishListDetails(ctx context.Context, lists []models.DishList) error {
	if len(lists) == 0 {
		return nil
	}

	index := make(map[string]*models.DishList, len(lists))
	ids := make([]any, 0, len(lists))
	for i := range lists {
		index[lists[i].ID] = &lists[i]
		ids = append(ids, lists[i].ID)
	}
	in := placeholders(len(ids))

	collabRows, err := db.conn.QueryContext(ctx,
		`SELECT dc.dishlist_id, u.uid, u.username, u.first_name, u.last_name, u.avatar_url
		 FROM dishlist_collaborators dc
		 JOIN users u ON u.uid = dc.user_uid
		 WHERE dc.dishlist_id IN (`+in+`)
		 ORDER BY dc.dishlist_id, dc.added_at`, ids...)
	if err != nil {
		return fmt.Errorf("failed to load collaborators: %w", err)
	}
	defer closeQuietly(collabRows)

	for collabRows.Next() {
		var listID string
		var u models.User
		if err := collabRows.Scan(&listID, &u.UID, &u.Username, &u.FirstName, &u.LastName, &u.AvatarURL); err != nil {
			return fmt.Errorf("failed to scan collaborator: %w", err)
		}
		if d, ok := index[listID]; ok {
			d.Collaborators = append(d.Collaborators, u)
		}
	}
	if err := collabRows.Err(); err != nil {
		return err
	}

	return db.loadSampleRecipes(ctx, index, in, ids)
}

// loadSampleRecipes attaches up to sampleRecipeLimit contained recipes
// per dishlist, each with its ingredient list.
func (db *DB) loadSampleRecipes(ctx context.Context, index map[string]*models.DishList, in string, ids []any) error {
	sampleRows, err := db.conn.QueryContext(ctx, fmt.Sprintf(
		`SELECT dishlist_id, recipe_id, title FROM (
			SELECT dr.dishlist_id, r.id AS recipe_id, r.title,
			       row_number() OVER (PARTITION BY dr.dishlist_id ORDER BY dr.position, dr.recipe_id) AS rn
			FROM dishlist_recipes dr
			JOIN recipes r ON r.id = dr.recipe_id
			WHERE dr.dishlist_id IN (%s)
		) WHERE rn <= %d
		ORDER BY dishlist_id, rn`, in, sampleRecipeLimit), ids...)
	if err != nil {
		return fmt.Errorf("failed to load sample recipes: %w", err)
	}
	defer closeQuietly(sampleRows)

	// Track where each sampled recipe landed so ingredients can be
	// attached after the second query.
	type samplePos struct {
		listID string
		idx    int
	}
	positions := make(map[string][]samplePos)
	recipeIDs := make([]any, 0, 32)

	for sampleRows.Next() {
		var listID, recipeID, title string
		if err := sampleRows.Scan(&listID, &recipeID, &title); err != nil {
			return fmt.Errorf("failed to scan sample recipe: %w", err)
		}
		d, ok := index[listID]
		if !ok {
			continue
		}
		d.SampleRecipes = append(d.SampleRecipes, models.RecipeSample{Title: title})
		if len(positions[recipeID]) == 0 {
			recipeIDs = append(recipeIDs, recipeID)
		}
		positions[recipeID] = append(positions[recipeID], samplePos{listID: listID, idx: len(d.SampleRecipes) - 1})
	}
	if err := sampleRows.Err(); err != nil {
		return err
	}
	if len(recipeIDs) == 0 {
		return nil
	}

	ingRows, err := db.conn.QueryContext(ctx,
		`SELECT recipe_id, item_type, item_text
		 FROM recipe_ingredients
		 WHERE recipe_id IN (`+placeholders(len(recipeIDs))+`)
		 ORDER BY recipe_id, position`, recipeIDs...)
	if err != nil {
		return fmt.Errorf("failed to load sample ingredients: %w", err)
	}
	defer closeQuietly(ingRows)

	for ingRows.Next() {
		var recipeID string
		var ing models.Ingredient
		if err := ingRows.Scan(&recipeID, &ing.Type, &ing.Text); err != nil {
			return fmt.Errorf("failed to scan sample ingredient: %w", err)
		}
		for _, pos := range positions[recipeID] {
			d := index[pos.listID]
			d.SampleRecipes[pos.idx].Ingredients = append(d.SampleRecipes[pos.idx].Ingredients, ing)
		}
	}
	return ingRows.Err()
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
