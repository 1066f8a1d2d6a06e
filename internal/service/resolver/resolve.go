package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/pkg/ctxutil"
)

// ResolveInput is a parsed fragment together with the draft's current selection.
type ResolveInput struct {
	Fragment domain.ParsedFragment
	Current  domain.Selection
}

// Resolve maps the fragment's category names onto the caller's tree. It has no
// side effects; applying the outcome to a draft is up to the caller (see
// ApplyOutcome).
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (*domain.Outcome, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Fragment.Validate(); err != nil {
		return nil, err
	}

	out, err := s.engine.resolve(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	s.rec.RecordResolution(out)
	return out, nil
}

// ResolveByActivityName looks an activity of userID up by name and walks to
// its field and area. found is false when nothing matched or a parent is not
// usable; the partial match is returned in that case.
func (s *Service) ResolveByActivityName(ctx context.Context, name string, userID uuid.UUID) (TreeMatch, bool, error) {
	if userID == uuid.Nil {
		return TreeMatch{}, false, domain.ErrUnauthorized
	}
	return s.engine.lookupActivity(ctx, userID, strings.TrimSpace(name))
}

// resolve applies the resolution policy:
//
//  1. An activity name pins the whole hierarchy, so it is looked up first and
//     takes priority over area and field names.
//  2. Otherwise the named levels are resolved top-down starting from the
//     current selection. Changing a level clears everything below it, and a
//     resolved parent with exactly one active child auto-selects that child
//     when the fragment does not name the child level.
//
// Any match below the auto-resolve threshold pauses for confirmation.
func (e *engine) resolve(ctx context.Context, userID uuid.UUID, input ResolveInput) (*domain.Outcome, error) {
	frag := input.Fragment.Trimmed()

	var (
		out *domain.Outcome
		err error
	)
	if frag.Activity != "" {
		out, err = e.resolveByActivity(ctx, userID, frag)
	} else {
		out, err = e.descend(ctx, userID, frag, input.Current)
	}
	if err != nil {
		return nil, err
	}

	e.log.DebugContext(ctx, "fragment resolved",
		slog.String("user_id", userID.String()),
		slog.String("kind", out.Kind.String()),
		slog.Int("matches", len(out.Matches)),
	)
	return out, nil
}

func (e *engine) resolveByActivity(ctx context.Context, userID uuid.UUID, frag domain.ParsedFragment) (*domain.Outcome, error) {
	tm, found, err := e.lookupActivity(ctx, userID, frag.Activity)
	if err != nil {
		return nil, err
	}
	if !found {
		return e.noMatch(ctx, userID, frag)
	}

	path, _ := tm.Path()
	match := domain.MatchResult{
		Level:      domain.LevelActivity,
		EntityID:   tm.Activity.ID,
		Name:       tm.Activity.Name,
		Confidence: tm.Confidence,
		Type:       tm.Type,
	}

	if tm.Confidence >= e.matcher.Thresholds.AutoResolve {
		return &domain.Outcome{
			Kind:      domain.OutcomeResolved,
			Selection: path.Selection(),
			Matches:   []domain.MatchResult{match},
		}, nil
	}

	return &domain.Outcome{
		Kind:      domain.OutcomeNeedsConfirmation,
		Selection: path.Selection(),
		Match:     &match,
		Candidate: &path,
		Input:     frag.Activity,
	}, nil
}

// noMatch proposes where a new activity could be created: the area matching
// the area hint (else the first area) and the field matching the field hint
// under it (else its first field).
func (e *engine) noMatch(ctx context.Context, userID uuid.UUID, frag domain.ParsedFragment) (*domain.Outcome, error) {
	out := &domain.Outcome{
		Kind:       domain.OutcomeNoMatch,
		Suggestion: &domain.CreationSuggestion{ActivityName: frag.Activity},
		Unmatched:  []domain.Level{domain.LevelActivity},
	}

	areas, err := e.cat.ListAreas(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	if len(areas) == 0 {
		return out, nil
	}

	area := areas[0]
	if frag.Area != "" {
		if m, ok := FindBestMatch(e.matcher, frag.Area, areas, areaName); ok {
			area = m.Item
		} else {
			out.Unmatched = append(out.Unmatched, domain.LevelArea)
		}
	}
	out.Suggestion.Area = &area

	fields, err := e.cat.ListFields(ctx, userID, area.ID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	if len(fields) == 0 {
		return out, nil
	}

	field := fields[0]
	if frag.Field != "" {
		if m, ok := FindBestMatch(e.matcher, frag.Field, fields, fieldName); ok {
			field = m.Item
		} else {
			out.Unmatched = append(out.Unmatched, domain.LevelField)
		}
	}
	out.Suggestion.Field = &field

	return out, nil
}

// descend resolves area and field names top-down from the current selection.
// Each step receives the child list loaded by the previous step.
func (e *engine) descend(ctx context.Context, userID uuid.UUID, frag domain.ParsedFragment, current domain.Selection) (*domain.Outcome, error) {
	sel := current
	var matches []domain.MatchResult

	resolved := func(unmatched ...domain.Level) *domain.Outcome {
		return &domain.Outcome{
			Kind:      domain.OutcomeResolved,
			Selection: sel,
			Matches:   matches,
			Unmatched: unmatched,
		}
	}
	confirm := func(proposal domain.Selection, m domain.MatchResult, input string) *domain.Outcome {
		return &domain.Outcome{
			Kind:      domain.OutcomeNeedsConfirmation,
			Selection: proposal,
			Match:     &m,
			Input:     input,
		}
	}

	if frag.Area != "" {
		areas, err := e.cat.ListAreas(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list areas: %w", err)
		}
		m, ok := FindBestMatch(e.matcher, frag.Area, areas, areaName)
		if !ok {
			return resolved(domain.LevelArea), nil
		}
		mr := matchResult(domain.LevelArea, m.Item.ID, m.Item.Name, m.Confidence, m.Type)
		proposal := setLevel(sel, domain.LevelArea, m.Item.ID)
		if m.Confidence < e.matcher.Thresholds.AutoResolve {
			return confirm(proposal, mr, frag.Area), nil
		}
		sel = proposal
		matches = append(matches, mr)
	}

	if sel.AreaID == nil {
		if frag.Field != "" {
			return resolved(domain.LevelField), nil
		}
		return resolved(), nil
	}

	fields, err := e.cat.ListFields(ctx, userID, *sel.AreaID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	switch {
	case frag.Field != "":
		m, ok := FindBestMatch(e.matcher, frag.Field, fields, fieldName)
		if !ok {
			return resolved(domain.LevelField), nil
		}
		mr := matchResult(domain.LevelField, m.Item.ID, m.Item.Name, m.Confidence, m.Type)
		proposal := setLevel(sel, domain.LevelField, m.Item.ID)
		if m.Confidence < e.matcher.Thresholds.AutoResolve {
			return confirm(proposal, mr, frag.Field), nil
		}
		sel = proposal
		matches = append(matches, mr)
	case sel.FieldID == nil && len(fields) == 1:
		sel = sel.Set(domain.LevelField, fields[0].ID)
	}

	if sel.FieldID == nil || sel.ActivityID != nil {
		return resolved(), nil
	}

	acts, err := e.cat.ListActivities(ctx, userID, *sel.FieldID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	if len(acts) == 1 {
		sel = sel.Set(domain.LevelActivity, acts[0].ID)
	}

	return resolved(), nil
}

// setLevel changes one level and clears its descendants, unless the level
// already holds id, in which case the selection is kept as is.
func setLevel(sel domain.Selection, level domain.Level, id uuid.UUID) domain.Selection {
	var cur *uuid.UUID
	switch level {
	case domain.LevelArea:
		cur = sel.AreaID
	case domain.LevelField:
		cur = sel.FieldID
	case domain.LevelActivity:
		cur = sel.ActivityID
	}
	if cur != nil && *cur == id {
		return sel
	}
	return sel.Set(level, id)
}

func matchResult(level domain.Level, id uuid.UUID, name string, confidence float64, t domain.MatchType) domain.MatchResult {
	return domain.MatchResult{Level: level, EntityID: id, Name: name, Confidence: confidence, Type: t}
}
