// Package suggest finds the nearest known name for a misspelled one.
package suggest

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Closest returns the candidate that best matches name, or "" when nothing
// is close. Candidates that contain name as a fuzzy subsequence win first;
// otherwise name itself is searched for each candidate, which catches
// inputs with extra characters ("ls_colours").
func Closest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}
	lower := strings.ToLower(name)
	for _, c := range candidates {
		if strings.ToLower(c) == lower {
			return c
		}
	}
	if matches := fuzzy.Find(lower, candidates); len(matches) > 0 {
		return matches[0].Str
	}

	best, bestScore := "", 0
	for _, c := range candidates {
		if c == "" {
			continue
		}
		matches := fuzzy.Find(strings.ToLower(c), []string{lower})
		if len(matches) > 0 && (best == "" || matches[0].Score > bestScore) {
			best, bestScore = c, matches[0].Score
		}
	}
	return best
}

// Hint formats Closest as an error suffix: ", did you mean 'x'?".
func Hint(name string, candidates []string) string {
	c := Closest(name, candidates)
	if c == "" || c == name {
		return ""
	}
	return fmt.Sprintf(", did you mean '%s'?", c)
}
