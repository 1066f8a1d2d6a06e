package domain

import "github.com/google/uuid"

// Selection is the category currently chosen for a draft. Any level may be
// unset; a child level is never set without its parent.
type Selection struct {
	AreaID     *uuid.UUID
	FieldID    *uuid.UUID
	ActivityID *uuid.UUID
}

// Complete reports whether all three levels are set.
func (s Selection) Complete() bool {
	return s.AreaID != nil && s.FieldID != nil && s.ActivityID != nil
}

// Empty reports whether no level is set.
func (s Selection) Empty() bool {
	return s.AreaID == nil && s.FieldID == nil && s.ActivityID == nil
}

// Set returns a copy with the given level set to id and every level below it
// cleared. Changing an area clears field and activity; changing a field clears
// the activity.
func (s Selection) Set(level Level, id uuid.UUID) Selection {
	out := s.Clear(level)
	switch level {
	case LevelArea:
		out.AreaID = &id
	case LevelField:
		out.FieldID = &id
	case LevelActivity:
		out.ActivityID = &id
	}
	return out
}

// Clear returns a copy with the given level and all levels below it unset.
func (s Selection) Clear(from Level) Selection {
	out := s
	switch from {
	case LevelArea:
		out.AreaID = nil
		out.FieldID = nil
		out.ActivityID = nil
	case LevelField:
		out.FieldID = nil
		out.ActivityID = nil
	case LevelActivity:
		out.ActivityID = nil
	}
	return out
}

// Equal compares two selections level by level.
func (s Selection) Equal(o Selection) bool {
	return eqUUID(s.AreaID, o.AreaID) && eqUUID(s.FieldID, o.FieldID) && eqUUID(s.ActivityID, o.ActivityID)
}

func eqUUID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
