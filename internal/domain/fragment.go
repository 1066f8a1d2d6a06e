package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout is the wire and storage format of entry dates.
const DateLayout = "2006-01-02"

const maxFragmentNameLen = 200

// ParsedFragment holds the values extracted from a transcription. Empty
// strings and a nil Duration mean "not mentioned".
type ParsedFragment struct {
	Area        string
	Field       string
	Activity    string
	Duration    *float64 // decimal hours
	Date        string   // YYYY-MM-DD
	StartTime   string   // HH:MM[:SS]
	EndTime     string   // HH:MM[:SS]
	Description string
}

// Trimmed returns a copy with surrounding whitespace removed from every text value.
func (f ParsedFragment) Trimmed() ParsedFragment {
	f.Area = strings.TrimSpace(f.Area)
	f.Field = strings.TrimSpace(f.Field)
	f.Activity = strings.TrimSpace(f.Activity)
	f.Date = strings.TrimSpace(f.Date)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

// NamedLevels returns the category levels the fragment mentions by name,
// top-down.
func (f ParsedFragment) NamedLevels() []Level {
	var levels []Level
	if f.Area != "" {
		levels = append(levels, LevelArea)
	}
	if f.Field != "" {
		levels = append(levels, LevelField)
	}
	if f.Activity != "" {
		levels = append(levels, LevelActivity)
	}
	return levels
}

// Name returns the fragment's name for the given level.
func (f ParsedFragment) Name(level Level) string {
	switch level {
	case LevelArea:
		return f.Area
	case LevelField:
		return f.Field
	case LevelActivity:
		return f.Activity
	}
	return ""
}

// Validate checks the shape of a fragment at the system boundary and collects
// all errors.
func (f ParsedFragment) Validate() error {
	var errs []FieldError

	for _, lv := range []Level{LevelArea, LevelField, LevelActivity} {
		if utf8.RuneCountInString(strings.TrimSpace(f.Name(lv))) > maxFragmentNameLen {
			errs = append(errs, FieldError{Field: strings.ToLower(lv.String()), Message: "max 200 characters"})
		}
	}

	if f.Duration != nil && (*f.Duration < 0 || *f.Duration >= 24) {
		errs = append(errs, FieldError{Field: "duration", Message: "must be at least 0 and under 24 hours"})
	}
	if d := strings.TrimSpace(f.Date); d != "" {
		if _, err := time.Parse(DateLayout, d); err != nil {
			errs = append(errs, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}
	if s := strings.TrimSpace(f.StartTime); s != "" {
		if _, err := ParseTimeOfDay(s); err != nil {
			errs = append(errs, FieldError{Field: "start_time", Message: "must be HH:MM or HH:MM:SS"})
		}
	}
	if s := strings.TrimSpace(f.EndTime); s != "" {
		if _, err := ParseTimeOfDay(s); err != nil {
			errs = append(errs, FieldError{Field: "end_time", Message: "must be HH:MM or HH:MM:SS"})
		}
	}
	if utf8.RuneCountInString(f.Description) > 2000 {
		errs = append(errs, FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
