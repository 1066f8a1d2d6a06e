package domain

import "github.com/google/uuid"

// MatchResult describes how a free-text name was matched to an entity.
type MatchResult struct {
	Level      Level
	EntityID   uuid.UUID
	Name       string
	Confidence float64
	Type       MatchType
}

// CreationSuggestion carries what the caller needs to offer a one-click
// "create new activity" action.
type CreationSuggestion struct {
	ActivityName string
	Area         *Area
	Field        *Field
}

// Outcome is the result of resolving a fragment. Exactly one of the variant
// payloads is meaningful, selected by Kind:
//
//   - OutcomeResolved: Selection (may be partial when building up level by
//     level) and the Matches that produced it.
//   - OutcomeNeedsConfirmation: Match and Input, plus Candidate when an
//     activity was matched. Selection holds the proposal; the draft's current
//     selection must not change until the caller confirms.
//   - OutcomeNoMatch: Suggestion.
type Outcome struct {
	Kind      OutcomeKind
	Selection Selection
	Matches   []MatchResult

	Match     *MatchResult
	Candidate *CategoryPath
	Input     string

	Suggestion *CreationSuggestion

	// Unmatched lists levels that were named explicitly but matched nothing.
	Unmatched []Level

	// Superseded marks a side effect that was committed after a newer session
	// action took over. The outcome describes what was persisted; it was not
	// applied to the draft.
	Superseded bool
}

// Resolved reports whether the outcome carries a selection to apply.
func (o *Outcome) Resolved() bool {
	return o != nil && o.Kind == OutcomeResolved
}
