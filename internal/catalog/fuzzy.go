package catalog

import "strings"

// FuzzyMatch reports whether every character of query occurs in target in the
// same relative order, not necessarily contiguously. The comparison is
// case-insensitive. An empty query matches anything; a non-empty query never
// matches an empty target.
func FuzzyMatch(query, target string) bool {
	if query == "" {
		return true
	}
	q := []rune(strings.ToLower(query))
	i := 0
	for _, r := range strings.ToLower(target) {
		if r == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}
