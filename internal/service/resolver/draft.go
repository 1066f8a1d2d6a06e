package resolver

import (
	"slices"
	"strings"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// ApplyOutcome merges a fragment and its resolution outcome into a draft.
//
// Only a resolved outcome changes the selection; a pending confirmation or a
// missing activity leaves it as it was. Date, times, duration and description
// are merged regardless of the outcome. A start/end pair mentioned in this
// fragment wins over a decimal duration.
func ApplyOutcome(draft domain.EntryDraft, out *domain.Outcome, frag domain.ParsedFragment) domain.EntryDraft {
	frag = frag.Trimmed()

	if out.Resolved() {
		draft.Selection = out.Selection
	}

	if frag.Date != "" {
		draft.Date = frag.Date
	}

	timesChanged := false
	if frag.StartTime != "" {
		if t, err := domain.NormalizeTimeOfDay(frag.StartTime); err == nil {
			draft.StartTime = t
			timesChanged = true
		}
	}
	if frag.EndTime != "" {
		if t, err := domain.NormalizeTimeOfDay(frag.EndTime); err == nil {
			draft.EndTime = t
			timesChanged = true
		}
	}

	switch {
	case timesChanged && draft.StartTime != "" && draft.EndTime != "":
		start, err1 := domain.ParseTimeOfDay(draft.StartTime)
		end, err2 := domain.ParseTimeOfDay(draft.EndTime)
		if err1 == nil && err2 == nil {
			draft.Duration = domain.FormatClock(domain.Span(start, end))
		}
	case frag.Duration != nil:
		draft.Duration = domain.FormatClock(domain.HoursToDuration(*frag.Duration))
	}

	if frag.Description != "" && !hasSegment(draft.Description, frag.Description) {
		if draft.Description == "" {
			draft.Description = frag.Description
		} else {
			draft.Description += " " + frag.Description
		}
	}

	return draft
}

// hasSegment reports whether seg already occurs in desc as a run of whole
// space-separated words.
func hasSegment(desc, seg string) bool {
	words, want := strings.Fields(desc), strings.Fields(seg)
	if len(want) == 0 {
		return true
	}
	for i := 0; i+len(want) <= len(words); i++ {
		if slices.Equal(words[i:i+len(want)], want) {
			return true
		}
	}
	return false
}
