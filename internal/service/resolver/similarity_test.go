package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity_SymmetricAndBounded(t *testing.T) {
	t.Parallel()

	words := []string{
		"", "a", "Standup", "standup", "Standpu", "Stand-ap", "React Development",
		"Entwicklung", "Frontend", "Completely Unknown Task", "Über", "über  alles",
	}
	metrics := map[string]DistanceFunc{
		"damerau":     DamerauDistance,
		"levenshtein": LevenshteinDistance,
	}

	for name, dist := range metrics {
		for _, a := range words {
			for _, b := range words {
				ab := similarity(dist, a, b)
				ba := similarity(dist, b, a)
				assert.InDelta(t, ab, ba, 1e-9, "%s: similarity(%q,%q) not symmetric", name, a, b)
				assert.GreaterOrEqual(t, ab, 0.0, "%s: %q/%q", name, a, b)
				assert.LessOrEqual(t, ab, 1.0, "%s: %q/%q", name, a, b)
			}
		}
	}
}

func TestSimilarity_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
		dist DistanceFunc
		want float64
	}{
		{"both empty", "", "", DamerauDistance, 1.0},
		{"one empty", "abc", "", DamerauDistance, 0.0},
		{"case insensitive", "Standup", "STANDUP", DamerauDistance, 1.0},
		{"whitespace collapsed", "React  Development ", "react development", DamerauDistance, 1.0},
		{"transposition damerau", "Standpu", "Standup", DamerauDistance, 1 - 1.0/7},
		{"transposition levenshtein", "Standpu", "Standup", LevenshteinDistance, 1 - 2.0/7},
		{"runes not bytes", "Über", "Uber", DamerauDistance, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, similarity(tt.dist, tt.a, tt.b), 1e-9)
		})
	}
}

func TestDistanceByName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, DistanceByName("levenshtein")("ab", "ba"))
	assert.Equal(t, 2, DistanceByName(" Levenshtein ")("ab", "ba"))
	assert.Equal(t, 1, DistanceByName("damerau")("ab", "ba"))
	assert.Equal(t, 1, DistanceByName("unknown")("ab", "ba"))
}
