package resolver

import (
	"strings"

	"github.com/heartmarshall/zeitdreher-backend/internal/config"
	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// Thresholds controls how matches are accepted and scored.
type Thresholds struct {
	// FuzzyAccept is the minimum similarity for a fuzzy match to count.
	FuzzyAccept float64
	// AutoResolve is the minimum confidence applied without confirmation.
	AutoResolve float64
	// CaseInsensitive and Substring are the fixed confidences of those stages.
	CaseInsensitive float64
	Substring       float64
}

// DefaultThresholds returns the uncalibrated defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FuzzyAccept:     0.6,
		AutoResolve:     0.8,
		CaseInsensitive: 0.95,
		Substring:       0.8,
	}
}

// ThresholdsFromConfig converts the validated resolver config.
func ThresholdsFromConfig(cfg config.ResolverConfig) Thresholds {
	return Thresholds{
		FuzzyAccept:     cfg.FuzzyAccept,
		AutoResolve:     cfg.AutoResolve,
		CaseInsensitive: cfg.CaseInsensitiveConfidence,
		Substring:       cfg.SubstringConfidence,
	}
}

// Matcher finds the best candidate for a free-text name.
type Matcher struct {
	Thresholds Thresholds
	Distance   DistanceFunc
}

// NewMatcher returns a Matcher with the given thresholds and metric.
// A nil distance uses DamerauDistance.
func NewMatcher(th Thresholds, dist DistanceFunc) Matcher {
	if dist == nil {
		dist = DamerauDistance
	}
	return Matcher{Thresholds: th, Distance: dist}
}

// Similarity scores two names with the matcher's metric.
func (m Matcher) Similarity(a, b string) float64 {
	return similarity(m.Distance, a, b)
}

// Match is a candidate chosen by FindBestMatch.
type Match[T any] struct {
	Item       T
	Confidence float64
	Type       domain.MatchType
}

// FindBestMatch picks the candidate whose name best matches target. Stages run
// in order and the first hit wins:
//
//  1. exact (case-sensitive)
//  2. case-insensitive
//  3. substring in either direction, case-insensitive
//  4. highest similarity, accepted only at or above FuzzyAccept
//
// Within a stage the earliest candidate wins.
func FindBestMatch[T any](m Matcher, target string, candidates []T, name func(T) string) (Match[T], bool) {
	var zero Match[T]

	target = strings.TrimSpace(target)
	normTarget := domain.NormalizeName(target)
	if normTarget == "" || len(candidates) == 0 {
		return zero, false
	}

	for _, c := range candidates {
		if name(c) == target {
			return Match[T]{Item: c, Confidence: 1.0, Type: domain.MatchTypeExact}, true
		}
	}

	norms := make([]string, len(candidates))
	for i, c := range candidates {
		norms[i] = domain.NormalizeName(name(c))
	}

	for i, n := range norms {
		if n == normTarget {
			return Match[T]{Item: candidates[i], Confidence: m.Thresholds.CaseInsensitive, Type: domain.MatchTypeCaseInsensitive}, true
		}
	}

	for i, n := range norms {
		if n == "" {
			continue
		}
		if strings.Contains(normTarget, n) || strings.Contains(n, normTarget) {
			return Match[T]{Item: candidates[i], Confidence: m.Thresholds.Substring, Type: domain.MatchTypeSubstring}, true
		}
	}

	best, bestScore := -1, -1.0
	for i, n := range norms {
		if score := m.Similarity(normTarget, n); score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < m.Thresholds.FuzzyAccept {
		return zero, false
	}
	return Match[T]{Item: candidates[best], Confidence: bestScore, Type: domain.MatchTypeFuzzy}, true
}

func areaName(a domain.Area) string         { return a.Name }
func fieldName(f domain.Field) string       { return f.Name }
func activityName(a domain.Activity) string { return a.Name }
