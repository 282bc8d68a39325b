// Package search implements the diacritic- and case-insensitive substring
// matching used by every list view.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining marks, so "Café" and
// "cafe" normalize to the same string. Built per call: chained transformers
// carry state and are not safe to share across requests.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Normalize lowercases, strips diacritics and trims the input. Filtering is
// always a substring match over normalized text.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks(), strings.ToLower(s))
	if err != nil {
		return strings.TrimSpace(strings.ToLower(s))
	}
	return strings.TrimSpace(out)
}

// Matches reports whether the normalized query is a substring of the
// normalized space-joined fields. An empty query matches everything.
func Matches(query string, fields ...string) bool {
	term := Normalize(query)
	if term == "" {
		return true
	}
	return strings.Contains(Normalize(strings.Join(fields, " ")), term)
}
