package core

import (
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// minSimilarity is the lowest difflib ratio for a name to be suggested as a correction.
const minSimilarity = .6

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ClosestMatch returns the candidate most similar to `s` (case-insensitive),
// ok is false when none reaches minSimilarity.
func ClosestMatch(s string, candidates []string) (match string, ok bool) {
	s = CleanString(s, true /* lower */)
	if s == "" {
		return "", false
	}
	best := 0.0
	for _, cand := range candidates {
		m := difflib.NewMatcher(strings.Split(s, ""), strings.Split(strings.ToLower(cand), ""))
		if ratio := m.Ratio(); ratio > best {
			best = ratio
			match = cand
		}
	}
	return match, best >= minSimilarity
}

// FormatScore renders a score the way reports show it: always at least one decimal ("45.0", "12.5").
func FormatScore(score float64) string {
	s := strconv.FormatFloat(score, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
