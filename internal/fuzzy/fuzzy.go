// Package fuzzy matches picker queries against candidate entries.
//
// Matching is a greedy left-to-right subsequence scan; every query rune
// must appear in order in the candidate. Scoring favors consecutive runs,
// word-boundary hits, and matches inside the final path segment, so that
// typing a file name ranks the file above directories that merely contain
// the letters.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Match is one scored candidate.
type Match struct {
	// Text is the matched candidate.
	Text string

	// Index is the candidate's position in the input slice.
	Index int

	// Score ranks the match; higher is better.
	Score int

	// Positions holds the rune indices of matched characters, for
	// highlighting.
	Positions []int
}

// Rank scores every candidate against query and returns matches sorted by
// descending score. Matching is case-insensitive. An empty query matches
// everything in input order with zero score. limit <= 0 means no limit.
func Rank(query string, candidates []string, limit int) []Match {
	query = strings.TrimSpace(strings.ToLower(query))

	if query == "" {
		n := len(candidates)
		if limit > 0 && limit < n {
			n = limit
		}
		out := make([]Match, n)
		for i := 0; i < n; i++ {
			out[i] = Match{Text: candidates[i], Index: i}
		}
		return out
	}

	queryRunes := []rune(query)
	out := make([]Match, 0, len(candidates))
	for i, cand := range candidates {
		score, positions := matchOne(queryRunes, cand)
		if score > 0 {
			out = append(out, Match{Text: cand, Index: i, Score: score, Positions: positions})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Text < out[j].Text
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// matchOne scans text for query as a subsequence and scores the result.
// Returns 0 when the query does not match.
func matchOne(queryRunes []rune, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	original := []rune(text)
	lowered := []rune(strings.ToLower(text))

	positions := make([]int, 0, len(queryRunes))
	qi := 0
	for i := 0; i < len(lowered) && qi < len(queryRunes); i++ {
		if lowered[i] == queryRunes[qi] {
			positions = append(positions, i)
			qi++
		}
	}
	if qi != len(queryRunes) {
		return 0, nil
	}

	return score(queryRunes, original, lowered, positions), positions
}

func score(queryRunes, original, lowered []rune, positions []int) int {
	s := 100

	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			s += 25
		}
	}

	for _, idx := range positions {
		if isBoundary(original, idx) {
			s += 20
		}
	}

	if positions[0] == 0 {
		s += 15
	}

	// Gap and leading-offset penalties keep scattered matches below
	// tight ones.
	if len(positions) > 1 {
		gap := positions[len(positions)-1] - positions[0] - len(positions) + 1
		s -= gap * 3
	}
	s -= positions[0]

	if len(lowered) < 30 {
		s += 30 - len(lowered)
	}

	// Matches inside the final path segment outrank directory matches.
	lastSep := -1
	for i := len(original) - 1; i >= 0; i-- {
		if original[i] == '/' || original[i] == '\\' {
			lastSep = i
			break
		}
	}
	if lastSep >= 0 {
		for _, idx := range positions {
			if idx > lastSep {
				s += 10
			}
		}
	}

	if s < 1 {
		s = 1
	}
	return s
}

// isBoundary reports whether idx starts a word: position zero, after a
// separator or punctuation, or a camelCase transition.
func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}

	prev, curr := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) || prev == '/' || prev == '\\' {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(curr)
}
