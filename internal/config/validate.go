package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Resolver.validate(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}

	if err := c.Category.validate(); err != nil {
		return fmt.Errorf("category: %w", err)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if c.Audit.RetentionDays <= 0 {
		return fmt.Errorf("audit.retention_days must be > 0 (got %d)", c.Audit.RetentionDays)
	}

	return nil
}

func (r *ResolverConfig) validate() error {
	if r.FuzzyAccept <= 0 || r.FuzzyAccept > 1 {
		return fmt.Errorf("fuzzy_accept must be in (0, 1] (got %v)", r.FuzzyAccept)
	}
	if r.AutoResolve < r.FuzzyAccept || r.AutoResolve > 1 {
		return fmt.Errorf("auto_resolve must be in [fuzzy_accept, 1] (got %v)", r.AutoResolve)
	}
	// Stage confidences must keep exact > case-insensitive >= substring.
	if r.CaseInsensitiveConfidence <= 0 || r.CaseInsensitiveConfidence >= 1 {
		return fmt.Errorf("case_insensitive_confidence must be in (0, 1) (got %v)", r.CaseInsensitiveConfidence)
	}
	if r.SubstringConfidence <= 0 || r.SubstringConfidence > r.CaseInsensitiveConfidence {
		return fmt.Errorf("substring_confidence must be in (0, case_insensitive_confidence] (got %v)", r.SubstringConfidence)
	}
	switch strings.ToLower(r.Distance) {
	case "levenshtein", "damerau":
	default:
		return fmt.Errorf("distance must be levenshtein or damerau (got %q)", r.Distance)
	}
	if r.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %v)", r.SessionTTL)
	}
	if r.MaxSessionsPerUser <= 0 {
		return fmt.Errorf("max_sessions_per_user must be > 0 (got %d)", r.MaxSessionsPerUser)
	}
	return nil
}

func (c *CategoryConfig) validate() error {
	if c.MaxAreasPerUser <= 0 {
		return fmt.Errorf("max_areas_per_user must be > 0 (got %d)", c.MaxAreasPerUser)
	}
	if c.MaxFieldsPerArea <= 0 {
		return fmt.Errorf("max_fields_per_area must be > 0 (got %d)", c.MaxFieldsPerArea)
	}
	if c.MaxActivitiesPerField <= 0 {
		return fmt.Errorf("max_activities_per_field must be > 0 (got %d)", c.MaxActivitiesPerField)
	}
	return nil
}
