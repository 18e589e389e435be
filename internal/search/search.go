// Package search ranks items against a free-text query using a tiered fuzzy
// scorer. Exact matches always outrank prefix matches, which outrank
// substring matches, which outrank character-subsequence matches.
package search

import (
	"slices"
	"strings"
)

// Scoring tiers. The subsequence tier is scaled so it can never reach the
// substring tier, keeping the ranking order of the tiers disjoint.
const (
	exactScore       = 1.0
	prefixScore      = 0.9
	substringScore   = 0.7
	subsequenceScale = 0.5
	// Subsequence matches where fewer than half the query characters appear
	// in order are noise and score zero.
	subsequenceMinRatio = 0.5
)

// Match pairs an item with its score in [0, 1].
type Match[T any] struct {
	Item  T
	Score float64
}

// Config controls how items are matched.
type Config[T any] struct {
	// Keys extract candidate strings from an item. The best score over all
	// candidates from all keys becomes the item's score.
	Keys []func(T) []string
	// Threshold excludes items scoring below it.
	Threshold float64
}

// Search scores items against query and returns matches sorted by descending
// score. A blank query matches every item with score 1 in input order. Ties
// keep input order.
func Search[T any](items []T, query string, cfg Config[T]) []Match[T] {
	query = strings.TrimSpace(query)
	matches := make([]Match[T], 0, len(items))
	if query == "" {
		for _, item := range items {
			matches = append(matches, Match[T]{Item: item, Score: exactScore})
		}
		return matches
	}

	for _, item := range items {
		score := 0.0
		for _, key := range cfg.Keys {
			for _, candidate := range key(item) {
				score = max(score, Score(candidate, query))
			}
		}
		if score < cfg.Threshold || score == 0 {
			continue
		}
		matches = append(matches, Match[T]{Item: item, Score: score})
	}

	slices.SortStableFunc(matches, func(a, b Match[T]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return matches
}

// Score rates how well text matches query, case-insensitively.
func Score(text, query string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || text == "" {
		return 0
	}

	switch {
	case text == query:
		return exactScore
	case strings.HasPrefix(text, query):
		return prefixScore
	case strings.Contains(text, query):
		return substringScore
	}

	ratio := subsequenceRatio(text, query)
	if ratio < subsequenceMinRatio {
		return 0
	}
	return ratio * subsequenceScale
}

// subsequenceRatio is the fraction of query characters found in order within
// text.
func subsequenceRatio(text, query string) float64 {
	textRunes := []rune(text)
	queryRunes := []rune(query)
	found := 0
	pos := 0
	for _, q := range queryRunes {
		for pos < len(textRunes) {
			match := textRunes[pos] == q
			pos++
			if match {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(queryRunes))
}
