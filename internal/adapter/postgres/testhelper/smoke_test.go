package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	path := SeedPath(t, pool, uuid.New())

	var name string
	err := pool.QueryRow(
		context.Background(),
		`SELECT a.name FROM activities a
		   JOIN fields f ON f.id = a.field_id
		  WHERE a.id = $1 AND f.area_id = $2`,
		path.Activity.ID, path.Area.ID,
	).Scan(&name)
	if err != nil {
		t.Fatalf("expected activity in DB, got error: %v", err)
	}

	if name != path.Activity.Name {
		t.Fatalf("expected name %q, got %q", path.Activity.Name, name)
	}
}
