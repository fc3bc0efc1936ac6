package catalog

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 20
)

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

// ParseLimit reads a result limit from user input. Like parseInt, only the
// leading integer of s is considered. Empty, unparsable or out of range values
// fall back to DefaultSearchLimit.
func ParseLimit(s string) int {
	digits := leadingInt.FindString(strings.TrimSpace(s))
	if digits == "" {
		return DefaultSearchLimit
	}
	limit, err := strconv.Atoi(digits)
	if err != nil || limit < 0 || limit > MaxSearchLimit {
		return DefaultSearchLimit
	}
	return limit
}

// SplitIntoWords splits s on whitespace, dashes, underscores and dots.
func SplitIntoWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '-', '_', '.', ' ', '\t', '\n', '\r', '\f', '\v':
			return true
		}
		return false
	})
}

func anyWordContains(words []string, term string) bool {
	return slices.ContainsFunc(words, func(word string) bool {
		return strings.Contains(word, term)
	})
}

// Score rates how well rec matches the lower-cased search terms. A record that
// misses any term scores 0.
func Score(rec Record, terms []string) int {
	id := strings.ToLower(rec.ID)
	provider := strings.ToLower(rec.ProviderID)

	score := 0
	matched := 0
	for _, term := range terms {
		termMatched := false
		if strings.Contains(id, term) {
			score += 10
			termMatched = true
		}
		if strings.Contains(provider, term) {
			score += 6
			termMatched = true
		}

		if !termMatched {
			if anyWordContains(SplitIntoWords(id), term) {
				score += 3
				termMatched = true
			} else if anyWordContains(SplitIntoWords(provider), term) {
				score += 1
				termMatched = true
			}
		}

		if termMatched {
			matched++
		}
	}

	if matched != len(terms) {
		return 0
	}
	return score
}

type scored struct {
	rec   Record
	score int
}

// Search returns up to limit records matching query, best match first. A blank
// query returns the first limit records unranked.
func Search(records []Record, query string, limit int) []Record {
	limit = max(limit, 0)
	if strings.TrimSpace(query) == "" {
		return slices.Clone(records[:min(limit, len(records))])
	}

	terms := strings.Fields(strings.ToLower(query))
	var results []scored
	for _, rec := range records {
		score := Score(rec, terms)
		if score > 0 {
			results = append(results, scored{rec: rec, score: score})
		}
	}
	slices.SortStableFunc(results, func(a, b scored) int {
		return b.score - a.score
	})

	out := make([]Record, 0, min(limit, len(results)))
	for _, r := range results[:min(limit, len(results))] {
		out = append(out, r.rec)
	}
	return out
}

// Suggest returns the id closest to query by Jaro-Winkler similarity, or false
// when there is nothing to suggest.
func Suggest(records []Record, query string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || len(records) == 0 {
		return "", false
	}

	best := ""
	bestScore := 0.0
	for _, rec := range records {
		score := matchr.JaroWinkler(query, strings.ToLower(rec.ID), false)
		if score > bestScore {
			best = rec.ID
			bestScore = score
		}
	}
	return best, best != ""
}
