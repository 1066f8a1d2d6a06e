package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParsedFragment_Validate_OK(t *testing.T) {
	t.Parallel()

	d := 2.25
	f := ParsedFragment{
		Activity:  "React Development",
		Duration:  &d,
		Date:      "2024-03-11",
		StartTime: "09:00",
		EndTime:   "17:30:00",
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParsedFragment_Validate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	d := -1.0
	f := ParsedFragment{
		Activity:  strings.Repeat("x", 201),
		Duration:  &d,
		Date:      "11.03.2024",
		StartTime: "25:00",
		EndTime:   "nope",
	}

	err := f.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}

	fields := map[string]bool{}
	for _, fe := range ve.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{"activity", "duration", "date", "start_time", "end_time"} {
		if !fields[want] {
			t.Errorf("missing error for %q (got %v)", want, ve.Errors)
		}
	}
}

func TestParsedFragment_Validate_DurationBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours float64
		ok    bool
	}{
		{0, true},
		{23.99, true},
		{24, false},
		{-0.5, false},
	}
	for _, tt := range tests {
		d := tt.hours
		err := ParsedFragment{Duration: &d}.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("duration %v: err = %v, want ok=%v", tt.hours, err, tt.ok)
		}
	}
}

func TestParsedFragment_NamedLevels(t *testing.T) {
	t.Parallel()

	f := ParsedFragment{Area: "Entwicklung", Activity: "Standup"}
	got := f.NamedLevels()
	if len(got) != 2 || got[0] != LevelArea || got[1] != LevelActivity {
		t.Errorf("got %v", got)
	}
	if len((ParsedFragment{}).NamedLevels()) != 0 {
		t.Error("empty fragment should name no levels")
	}
}

func TestParsedFragment_Trimmed(t *testing.T) {
	t.Parallel()

	f := ParsedFragment{Area: "  Büro ", Description: "\tcall with client\n"}.Trimmed()
	if f.Area != "Büro" || f.Description != "call with client" {
		t.Errorf("unexpected trim result: %+v", f)
	}
}
