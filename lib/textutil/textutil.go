package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeName lowercases a display name, trims it and collapses inner
// whitespace to a single space so "Jon  Jones " and "jon jones" compare equal.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSpace(name)
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

// CompactName is NormalizeName with spaces, hyphens and apostrophes removed,
// used to match spellings like "ChangHo" against "Chang-Ho".
func CompactName(name string) string {
	name = NormalizeName(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '\'', '.':
			return -1
		}
		return r
	}, name)
}

// MatchName reports whether the normalized name contains any of the matchers.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, NormalizeName(m)) {
			return true
		}
	}
	return false
}
