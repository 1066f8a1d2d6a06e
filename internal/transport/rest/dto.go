package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
	"github.com/heartmarshall/zeitdreher-backend/internal/service/resolver"
)

// ---------------------------------------------------------------------------
// Shared
// ---------------------------------------------------------------------------

type selectionDTO struct {
	AreaID     *uuid.UUID `json:"areaId,omitempty"`
	FieldID    *uuid.UUID `json:"fieldId,omitempty"`
	ActivityID *uuid.UUID `json:"activityId,omitempty"`
}

func (s selectionDTO) toDomain() domain.Selection {
	return domain.Selection{AreaID: s.AreaID, FieldID: s.FieldID, ActivityID: s.ActivityID}
}

func toSelectionDTO(s domain.Selection) selectionDTO {
	return selectionDTO{AreaID: s.AreaID, FieldID: s.FieldID, ActivityID: s.ActivityID}
}

type nodeResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type pathResponse struct {
	Area     nodeResponse `json:"area"`
	Field    nodeResponse `json:"field"`
	Activity nodeResponse `json:"activity"`
}

func toPathResponse(p domain.CategoryPath) pathResponse {
	return pathResponse{
		Area:     nodeResponse{ID: p.Area.ID, Name: p.Area.Name},
		Field:    nodeResponse{ID: p.Field.ID, Name: p.Field.Name},
		Activity: nodeResponse{ID: p.Activity.ID, Name: p.Activity.Name},
	}
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

type createAreaRequest struct {
	Name  string `json:"name"  validate:"required,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type createFieldRequest struct {
	AreaID uuid.UUID `json:"areaId" validate:"required"`
	Name   string    `json:"name"   validate:"required,max=100"`
}

type createActivityRequest struct {
	FieldID uuid.UUID `json:"fieldId" validate:"required"`
	Name    string    `json:"name"    validate:"required,max=100"`
}

type updateAreaRequest struct {
	Name  *string `json:"name"  validate:"omitempty,max=100"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

type renameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type areaResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAreaResponse(a *domain.Area) areaResponse {
	return areaResponse{
		ID:        a.ID,
		Name:      a.Name,
		Color:     a.Color,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type fieldResponse struct {
	ID        uuid.UUID `json:"id"`
	AreaID    uuid.UUID `json:"areaId"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFieldResponse(f *domain.Field) fieldResponse {
	return fieldResponse{ID: f.ID, AreaID: f.AreaID, Name: f.Name, IsActive: f.IsActive, CreatedAt: f.CreatedAt}
}

type activityResponse struct {
	ID        uuid.UUID `json:"id"`
	FieldID   uuid.UUID `json:"fieldId"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func toActivityResponse(a *domain.Activity) activityResponse {
	return activityResponse{ID: a.ID, FieldID: a.FieldID, Name: a.Name, IsActive: a.IsActive, CreatedAt: a.CreatedAt}
}

type archiveResponse struct {
	Areas      int `json:"areas"`
	Fields     int `json:"fields"`
	Activities int `json:"activities"`
}

type treeResponse struct {
	Areas []treeAreaResponse `json:"areas"`
}

type treeAreaResponse struct {
	ID     uuid.UUID           `json:"id"`
	Name   string              `json:"name"`
	Color  string              `json:"color"`
	Fields []treeFieldResponse `json:"fields"`
}

type treeFieldResponse struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Activities []nodeResponse `json:"activities"`
}

func toTreeResponse(t domain.CategoryTree) treeResponse {
	out := treeResponse{Areas: make([]treeAreaResponse, 0, len(t.Areas))}
	for _, an := range t.Areas {
		area := treeAreaResponse{
			ID:     an.Area.ID,
			Name:   an.Area.Name,
			Color:  an.Area.Color,
			Fields: make([]treeFieldResponse, 0, len(an.Fields)),
		}
		for _, fn := range an.Fields {
			field := treeFieldResponse{
				ID:         fn.Field.ID,
				Name:       fn.Field.Name,
				Activities: make([]nodeResponse, 0, len(fn.Activities)),
			}
			for _, act := range fn.Activities {
				field.Activities = append(field.Activities, nodeResponse{ID: act.ID, Name: act.Name})
			}
			area.Fields = append(area.Fields, field)
		}
		out.Areas = append(out.Areas, area)
	}
	return out
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

type fragmentRequest struct {
	Area        string   `json:"area"        validate:"max=200"`
	Field       string   `json:"field"       validate:"max=200"`
	Activity    string   `json:"activity"    validate:"max=200"`
	Duration    *float64 `json:"duration"    validate:"omitempty,gte=0,lt=24"`
	Date        string   `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	StartTime   string   `json:"startTime"`
	EndTime     string   `json:"endTime"`
	Description string   `json:"description" validate:"max=2000"`
}

func (f fragmentRequest) toDomain() domain.ParsedFragment {
	return domain.ParsedFragment{
		Area:        f.Area,
		Field:       f.Field,
		Activity:    f.Activity,
		Duration:    f.Duration,
		Date:        f.Date,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Description: f.Description,
	}
}

type resolveRequest struct {
	Fragment fragmentRequest `json:"fragment"`
	Current  selectionDTO    `json:"current"`
}

type sessionResolveRequest struct {
	Fragment fragmentRequest `json:"fragment"`
}

type sessionCreateRequest struct {
	Name    string     `json:"name"    validate:"max=100"`
	FieldID *uuid.UUID `json:"fieldId"`
}

type matchResponse struct {
	Level      string    `json:"level"`
	EntityID   uuid.UUID `json:"entityId"`
	Name       string    `json:"name"`
	Confidence float64   `json:"confidence"`
	Type       string    `json:"type"`
}

func toMatchResponse(m domain.MatchResult) matchResponse {
	return matchResponse{
		Level:      m.Level.String(),
		EntityID:   m.EntityID,
		Name:       m.Name,
		Confidence: m.Confidence,
		Type:       m.Type.String(),
	}
}

type suggestionResponse struct {
	ActivityName string        `json:"activityName"`
	Area         *nodeResponse `json:"area,omitempty"`
	Field        *nodeResponse `json:"field,omitempty"`
}

type outcomeResponse struct {
	Kind       string              `json:"kind"`
	Selection  selectionDTO        `json:"selection"`
	Matches    []matchResponse     `json:"matches,omitempty"`
	Match      *matchResponse      `json:"match,omitempty"`
	Candidate  *pathResponse       `json:"candidate,omitempty"`
	Input      string              `json:"input,omitempty"`
	Suggestion *suggestionResponse `json:"suggestion,omitempty"`
	Unmatched  []string            `json:"unmatched,omitempty"`
	Superseded bool                `json:"superseded,omitempty"`
}

func toOutcomeResponse(o *domain.Outcome) *outcomeResponse {
	if o == nil {
		return nil
	}
	out := &outcomeResponse{
		Kind:       o.Kind.String(),
		Selection:  toSelectionDTO(o.Selection),
		Input:      o.Input,
		Superseded: o.Superseded,
	}
	for _, m := range o.Matches {
		out.Matches = append(out.Matches, toMatchResponse(m))
	}
	if o.Match != nil {
		m := toMatchResponse(*o.Match)
		out.Match = &m
	}
	if o.Candidate != nil {
		p := toPathResponse(*o.Candidate)
		out.Candidate = &p
	}
	if s := o.Suggestion; s != nil {
		sr := &suggestionResponse{ActivityName: s.ActivityName}
		if s.Area != nil {
			sr.Area = &nodeResponse{ID: s.Area.ID, Name: s.Area.Name}
		}
		if s.Field != nil {
			sr.Field = &nodeResponse{ID: s.Field.ID, Name: s.Field.Name}
		}
		out.Suggestion = sr
	}
	for _, lv := range o.Unmatched {
		out.Unmatched = append(out.Unmatched, lv.String())
	}
	return out
}

type draftResponse struct {
	Selection   selectionDTO `json:"selection"`
	Date        string       `json:"date,omitempty"`
	StartTime   string       `json:"startTime,omitempty"`
	EndTime     string       `json:"endTime,omitempty"`
	Duration    string       `json:"duration,omitempty"`
	Description string       `json:"description,omitempty"`
}

func toDraftResponse(d domain.EntryDraft) draftResponse {
	return draftResponse{
		Selection:   toSelectionDTO(d.Selection),
		Date:        d.Date,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Duration:    d.Duration,
		Description: d.Description,
	}
}

type sessionResponse struct {
	ID      uuid.UUID        `json:"id"`
	State   string           `json:"state"`
	Draft   draftResponse    `json:"draft"`
	Pending *outcomeResponse `json:"pending,omitempty"`
}

func toSessionResponse(v resolver.SessionView) sessionResponse {
	return sessionResponse{
		ID:      v.ID,
		State:   v.State.String(),
		Draft:   toDraftResponse(v.Draft),
		Pending: toOutcomeResponse(v.Pending),
	}
}

type sessionOutcomeResponse struct {
	Outcome *outcomeResponse `json:"outcome"`
	Session sessionResponse  `json:"session"`
}

// ---------------------------------------------------------------------------
// Time entries
// ---------------------------------------------------------------------------

type createEntryRequest struct {
	Selection   selectionDTO `json:"selection"`
	Date        string       `json:"date"        validate:"required,datetime=2006-01-02"`
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
	Duration    string       `json:"duration"    validate:"required"`
	Description string       `json:"description" validate:"max=2000"`
}

func (c createEntryRequest) toDraft() domain.EntryDraft {
	return domain.EntryDraft{
		Selection:   c.Selection.toDomain(),
		Date:        c.Date,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		Duration:    c.Duration,
		Description: c.Description,
	}
}

type entryResponse struct {
	ID              uuid.UUID     `json:"id"`
	Date            string        `json:"date"`
	StartTime       *string       `json:"startTime,omitempty"`
	EndTime         *string       `json:"endTime,omitempty"`
	Duration        string        `json:"duration"`
	DurationSeconds int64         `json:"durationSeconds"`
	Description     string        `json:"description"`
	Path            *pathResponse `json:"path,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

func toEntryResponse(e domain.TimeEntry, path *domain.CategoryPath) entryResponse {
	out := entryResponse{
		ID:              e.ID,
		Date:            e.Date.Format(domain.DateLayout),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Duration:        domain.FormatClock(e.Duration),
		DurationSeconds: int64(e.Duration / time.Second),
		Description:     e.Description,
		CreatedAt:       e.CreatedAt,
	}
	if path != nil {
		p := toPathResponse(*path)
		out.Path = &p
	}
	return out
}

type listEntriesResponse struct {
	Entries []entryResponse `json:"entries"`
	Total   int             `json:"total"`
}

type areaTotalResponse struct {
	AreaID       uuid.UUID `json:"areaId"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	Total        string    `json:"total"`
	TotalSeconds int64     `json:"totalSeconds"`
	Entries      int       `json:"entries"`
}

type summaryResponse struct {
	From         *string             `json:"from,omitempty"`
	To           *string             `json:"to,omitempty"`
	Areas        []areaTotalResponse `json:"areas"`
	Total        string              `json:"total"`
	TotalSeconds int64               `json:"totalSeconds"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
