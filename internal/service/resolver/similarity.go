package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// DistanceFunc returns the edit distance between two strings, counted in runes.
type DistanceFunc func(a, b string) int

// LevenshteinDistance counts insertions, deletions and substitutions.
func LevenshteinDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// DamerauDistance additionally counts a swap of two adjacent characters as a
// single edit, which is the most common transcription and typing slip
// ("Standpu" for "Standup").
func DamerauDistance(a, b string) int {
	return edlib.DamerauLevenshteinDistance(a, b)
}

// DistanceByName maps a configured metric name to its DistanceFunc.
// Unknown names fall back to Damerau.
func DistanceByName(name string) DistanceFunc {
	if strings.EqualFold(strings.TrimSpace(name), "levenshtein") {
		return LevenshteinDistance
	}
	return DamerauDistance
}

// Similarity scores two names in [0, 1] using the default metric.
func Similarity(a, b string) float64 {
	return similarity(DamerauDistance, a, b)
}

// similarity is 1 - distance(longer, shorter) / len(longer) over normalized
// (case-folded, whitespace-collapsed) input. Two empty strings score 1.
func similarity(dist DistanceFunc, a, b string) float64 {
	a = domain.NormalizeName(a)
	b = domain.NormalizeName(b)

	longer, shorter := a, b
	if utf8.RuneCountInString(b) > utf8.RuneCountInString(a) {
		longer, shorter = b, a
	}
	n := utf8.RuneCountInString(longer)
	if n == 0 {
		return 1.0
	}

	score := 1 - float64(dist(longer, shorter))/float64(n)
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
