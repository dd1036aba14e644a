// Package search provides case-insensitive text matching for catalogue
// queries. Matching is a folded substring test over a book's title, author,
// and raw ISBN string; there is no ranking and no index, because the
// collection is small and held fully in memory.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns s in Unicode case-folded form, suitable for
// case-insensitive comparison across scripts (e.g. "Straße" vs "STRASSE").
// A fresh Caser per call keeps Fold safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Matcher performs repeated substring tests against one folded query term.
// A Matcher built from a blank term matches everything.
type Matcher struct {
	term string
}

// NewMatcher builds a Matcher for term. Leading/trailing whitespace is
// ignored; an empty or all-whitespace term produces a match-all Matcher.
func NewMatcher(term string) Matcher {
	return Matcher{term: Fold(strings.TrimSpace(term))}
}

// MatchAll reports whether the matcher accepts every candidate.
func (m Matcher) MatchAll() bool { return m.term == "" }

// Matches reports whether any of the given fields contains the query term,
// ignoring case.
func (m Matcher) Matches(fields ...string) bool {
	if m.term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Fold(f), m.term) {
			return true
		}
	}
	return false
}
