package ask

import (
	"slices"
	"strings"
)

// calculateFuzzyScore calculates a fuzzy matching score between input and candidate.
// Returns 0 if no match, higher scores for better matches.
// Supports case-insensitive matching when ignoreCase is true.
func calculateFuzzyScore(input, candidate string, ignoreCase bool) int {
	if input == "" {
		return 1
	}
	if candidate == "" {
		return 0
	}

	searchInput := input
	searchCandidate := candidate
	if ignoreCase {
		searchInput = strings.ToLower(input)
		searchCandidate = strings.ToLower(candidate)
	}

	if searchInput == searchCandidate {
		return 1000
	}
	if strings.HasPrefix(searchCandidate, searchInput) {
		return 800 + len(searchInput)*10
	}
	if strings.Contains(searchCandidate, searchInput) {
		return 500 + len(searchInput)*5
	}

	// Every input rune must appear in order in the candidate
	score := 0
	candidateRunes := []rune(searchCandidate)
	candidateIdx := 0
	for _, inputChar := range searchInput {
		found := false
		for candidateIdx < len(candidateRunes) {
			if candidateRunes[candidateIdx] == inputChar {
				score += 10
				candidateIdx++
				found = true
				break
			}
			candidateIdx++
		}
		if !found {
			return 0
		}
	}
	return score
}

// filterOptions returns the indexes of options matching query, best match
// first. Ties keep declaration order. An empty query matches everything.
func filterOptions(options []Option, query string) []int {
	type match struct {
		index int
		score int
	}
	query = strings.TrimSpace(query)
	matches := make([]match, 0, len(options))
	for i, opt := range options {
		score := calculateFuzzyScore(query, optionLabel(opt), true)
		if hint := calculateFuzzyScore(query, opt.Hint, true); query != "" && hint > score {
			score = hint
		}
		if score > 0 {
			matches = append(matches, match{index: i, score: score})
		}
	}
	if query != "" {
		slices.SortStableFunc(matches, func(a, b match) int {
			return b.score - a.score
		})
	}

	indexes := make([]int, len(matches))
	for i, m := range matches {
		indexes[i] = m.index
	}
	return indexes
}
