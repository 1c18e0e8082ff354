// DishList - Recipe Sharing and Social Discovery Backend
// Copyright 2026 DishList contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dishlistapp/dishlist

// Package search implements the relevance ranking engine behind the
// /search endpoint. Candidates fetched from the database are scored in
// process against the query text and the requester's social graph, then
// threshold-filtered, sorted, and paginated.
//
// Scoring is pure and request-scoped: no state survives a request, and
// identical inputs always produce identical rankings.
package search

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// Weights is a tiered weight table for a single text field. A field is
// scored at the single highest tier it satisfies; tiers never stack.
type Weights struct {
	Exact      float64
	StartsWith float64
	WordMatch  float64
	Contains   float64
}

// Field weight tables. The values are tuned ranking constants; change
// them together or relative ordering across fields breaks.
var (
	userNameWeights     = Weights{100, 90, 80, 60}
	userUsernameWeights = Weights{100, 70, 65, 50}

	recipeTitleWeights          = Weights{100, 90, 80, 60}
	recipeTagWeights            = Weights{50, 40, 35, 25}
	recipeMainIngredientWeights = Weights{45, 40, 35, 25}
	recipeIngredientWeights     = Weights{25, 20, 18, 12}
	recipeDescriptionWeights    = Weights{25, 20, 18, 15}
	recipeCreatorWeights        = Weights{20, 15, 12, 8}

	dishListTitleWeights         = Weights{100, 90, 80, 60}
	dishListOwnerNameWeights     = Weights{60, 50, 45, 35}
	dishListOwnerUsernameWeights = Weights{55, 45, 40, 30}
	dishListCollaboratorWeights  = Weights{35, 30, 25, 20}
	dishListRecipeTitleWeights   = Weights{35, 30, 25, 18}
	dishListIngredientWeights    = Weights{30, 25, 20, 15}
	dishListDescriptionWeights   = Weights{25, 20, 18, 15}
)

// mainIngredientCount is how many leading ingredient entries score with
// the higher "main ingredient" table.
const mainIngredientCount = 3

// socialBoostGate is the minimum base text score required before social
// and popularity boosts apply on the combined tab. The gate keeps a
// followed-but-irrelevant candidate from outranking a strong text match.
const socialBoostGate = 50

const (
	maxPopularityBoost = 15
	maxRecencyBoost    = 5
	recencyWindowDays  = 30
)

// matcher holds a normalized query and its precompiled word-boundary
// pattern, so the per-field tier check is cheap across hundreds of
// candidate fields in one request.
type matcher struct {
	query string
	word  *regexp.Regexp
}

func newMatcher(query string) *matcher {
	m := &matcher{query: strings.ToLower(strings.TrimSpace(query))}
	if m.query == "" {
		return m
	}
	// QuoteMeta guards against regex metacharacters in user input.
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(m.query) + `\b`)
	if err == nil {
		m.word = re
	}
	return m
}

func (m *matcher) empty() bool {
	return m.query == ""
}

// score returns the highest-tier weight the field satisfies, or 0 for
// no match or an empty field.
func (m *matcher) score(field string, w Weights) float64 {
	if m.query == "" {
		return 0
	}
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return 0
	}
	switch {
	case field == m.query:
		return w.Exact
	case strings.HasPrefix(field, m.query):
		return w.StartsWith
	case m.word != nil && m.word.MatchString(field):
		return w.WordMatch
	case strings.Contains(field, m.query):
		return w.Contains
	}
	return 0
}

// bestScore returns the highest single-field score among fields. Only
// the best field counts; matches across fields do not accumulate.
func (m *matcher) bestScore(fields []string, w Weights) float64 {
	var best float64
	for _, f := range fields {
		if s := m.score(f, w); s > best {
			best = s
		}
	}
	return best
}

// popularityBoost converts a follower count into a capped logarithmic
// boost. Logarithmic so 10,000 followers does not drown out 100, capped
// so popularity never overrides textual relevance.
func popularityBoost(count int, maxBoost float64) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(maxBoost, math.Log10(float64(count)+1)*3)
}

// recencyBoost decays linearly from maxBoost at zero days elapsed to 0
// at recencyWindowDays. A pure tie-breaker among near-equal scores.
func recencyBoost(updatedAt time.Time, maxBoost float64, now time.Time) float64 {
	days := now.Sub(updatedAt).Hours() / 24
	if days < 0 {
		days = 0
	}
	if days >= recencyWindowDays {
		return 0
	}
	return maxBoost * (1 - days/recencyWindowDays)
}
