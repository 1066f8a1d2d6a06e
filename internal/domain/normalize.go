package domain

import (
	"strings"
	"unicode"
)

// NormalizeName prepares a category name for comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - collapses any run of whitespace (tabs, newlines) into one space
//
// Umlauts and other diacritics are preserved, so "Büro" and "Buro" stay distinct.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteByte(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// SameName reports whether two names are equal after normalization.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
