package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultAreaColor is used when an area is created without an explicit color.
const DefaultAreaColor = "#3b82f6"

// Area is the top level of a user's category hierarchy.
type Area struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Color     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field belongs to exactly one Area.
type Field struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AreaID    uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity is the leaf level. It belongs to exactly one Field.
type Activity struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	FieldID   uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryPath is a fully resolved Area/Field/Activity triple.
type CategoryPath struct {
	Area     Area
	Field    Field
	Activity Activity
}

// Selection returns the IDs of the path as a complete Selection.
func (p CategoryPath) Selection() Selection {
	return Selection{
		AreaID:     ptrUUID(p.Area.ID),
		FieldID:    ptrUUID(p.Field.ID),
		ActivityID: ptrUUID(p.Activity.ID),
	}
}

// Consistent reports whether the parent links of the path line up and every
// node is owned by userID.
func (p CategoryPath) Consistent(userID uuid.UUID) bool {
	return p.Activity.FieldID == p.Field.ID &&
		p.Field.AreaID == p.Area.ID &&
		p.Area.UserID == userID &&
		p.Field.UserID == userID &&
		p.Activity.UserID == userID
}

// FieldNode is a field together with its active activities.
type FieldNode struct {
	Field      Field
	Activities []Activity
}

// AreaNode is an area together with its active fields.
type AreaNode struct {
	Area   Area
	Fields []FieldNode
}

// CategoryTree is one user's active category forest.
type CategoryTree struct {
	UserID uuid.UUID
	Areas  []AreaNode
}

// BuildCategoryTree assembles a tree from flat lists. Inactive nodes, nodes of
// other users and orphans (whose parent is not in the input) are dropped.
// Input order is preserved at every level.
func BuildCategoryTree(userID uuid.UUID, areas []Area, fields []Field, activities []Activity) CategoryTree {
	actsByField := make(map[uuid.UUID][]Activity)
	for _, a := range activities {
		if !a.IsActive || a.UserID != userID {
			continue
		}
		actsByField[a.FieldID] = append(actsByField[a.FieldID], a)
	}

	fieldsByArea := make(map[uuid.UUID][]FieldNode)
	for _, f := range fields {
		if !f.IsActive || f.UserID != userID {
			continue
		}
		acts := actsByField[f.ID]
		if acts == nil {
			acts = []Activity{}
		}
		fieldsByArea[f.AreaID] = append(fieldsByArea[f.AreaID], FieldNode{Field: f, Activities: acts})
	}

	tree := CategoryTree{UserID: userID, Areas: []AreaNode{}}
	for _, a := range areas {
		if !a.IsActive || a.UserID != userID {
			continue
		}
		fs := fieldsByArea[a.ID]
		if fs == nil {
			fs = []FieldNode{}
		}
		tree.Areas = append(tree.Areas, AreaNode{Area: a, Fields: fs})
	}
	return tree
}

// FindActivity returns the path of the activity with the given ID.
func (t CategoryTree) FindActivity(activityID uuid.UUID) (CategoryPath, bool) {
	for _, an := range t.Areas {
		for _, fn := range an.Fields {
			for _, act := range fn.Activities {
				if act.ID == activityID {
					return CategoryPath{Area: an.Area, Field: fn.Field, Activity: act}, true
				}
			}
		}
	}
	return CategoryPath{}, false
}

// AreaUpdateParams holds optional fields for a partial area update.
type AreaUpdateParams struct {
	Name  *string
	Color *string
}

func ptrUUID(id uuid.UUID) *uuid.UUID {
	return &id
}

// ArchiveSummary counts the nodes deactivated by one archive operation,
// including cascaded descendants.
type ArchiveSummary struct {
	Areas      int
	Fields     int
	Activities int
}
