package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestBuildCategoryTree_DropsInactiveForeignAndOrphans(t *testing.T) {
	t.Parallel()

	user := uuid.New()
	other := uuid.New()

	area := Area{ID: uuid.New(), UserID: user, Name: "Entwicklung", IsActive: true}
	archived := Area{ID: uuid.New(), UserID: user, Name: "Alt", IsActive: false}
	foreign := Area{ID: uuid.New(), UserID: other, Name: "Fremd", IsActive: true}

	field := Field{ID: uuid.New(), UserID: user, AreaID: area.ID, Name: "Frontend", IsActive: true}
	orphanField := Field{ID: uuid.New(), UserID: user, AreaID: uuid.New(), Name: "Orphan", IsActive: true}

	act := Activity{ID: uuid.New(), UserID: user, FieldID: field.ID, Name: "React Development", IsActive: true}
	inactiveAct := Activity{ID: uuid.New(), UserID: user, FieldID: field.ID, Name: "Old", IsActive: false}

	tree := BuildCategoryTree(user,
		[]Area{area, archived, foreign},
		[]Field{field, orphanField},
		[]Activity{act, inactiveAct},
	)

	if len(tree.Areas) != 1 {
		t.Fatalf("areas: got %d, want 1", len(tree.Areas))
	}
	if len(tree.Areas[0].Fields) != 1 {
		t.Fatalf("fields: got %d, want 1", len(tree.Areas[0].Fields))
	}
	acts := tree.Areas[0].Fields[0].Activities
	if len(acts) != 1 || acts[0].ID != act.ID {
		t.Fatalf("activities: got %+v", acts)
	}

	path, ok := tree.FindActivity(act.ID)
	if !ok {
		t.Fatal("FindActivity: not found")
	}
	if !path.Consistent(user) {
		t.Error("path should be consistent for owner")
	}
	if path.Consistent(other) {
		t.Error("path must not be consistent for another user")
	}
}

func TestSelection_SetCascadesClear(t *testing.T) {
	t.Parallel()

	a, f, act := uuid.New(), uuid.New(), uuid.New()
	full := Selection{AreaID: &a, FieldID: &f, ActivityID: &act}
	if !full.Complete() {
		t.Fatal("expected complete selection")
	}

	newArea := uuid.New()
	got := full.Set(LevelArea, newArea)
	if got.AreaID == nil || *got.AreaID != newArea {
		t.Errorf("area not set: %+v", got)
	}
	if got.FieldID != nil || got.ActivityID != nil {
		t.Errorf("changing area must clear field and activity: %+v", got)
	}

	newField := uuid.New()
	got = full.Set(LevelField, newField)
	if *got.AreaID != a || *got.FieldID != newField || got.ActivityID != nil {
		t.Errorf("changing field must keep area and clear activity: %+v", got)
	}

	if !full.Equal(full) || full.Equal(got) {
		t.Error("Equal misbehaves")
	}
}
