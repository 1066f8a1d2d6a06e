package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedArea inserts an active area for userID. An empty name gets a unique one.
func SeedArea(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, name string) domain.Area {
	t.Helper()
	if name == "" {
		name = "Area " + uniqueSuffix()
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Area{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     domain.DefaultAreaColor,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO areas (id, user_id, name, color, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, true, $5, $5)`,
		a.ID, a.UserID, a.Name, a.Color, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArea: %v", err)
	}
	return a
}

// SeedField inserts an active field under area.
func SeedField(t *testing.T, pool *pgxpool.Pool, area domain.Area, name string) domain.Field {
	t.Helper()
	if name == "" {
		name = "Field " + uniqueSuffix()
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	f := domain.Field{
		ID:        uuid.New(),
		UserID:    area.UserID,
		AreaID:    area.ID,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO fields (id, user_id, area_id, name, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, true, $5, $5)`,
		f.ID, f.UserID, f.AreaID, f.Name, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedField: %v", err)
	}
	return f
}

// SeedActivity inserts an active activity under field.
func SeedActivity(t *testing.T, pool *pgxpool.Pool, field domain.Field, name string) domain.Activity {
	t.Helper()
	if name == "" {
		name = "Activity " + uniqueSuffix()
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Activity{
		ID:        uuid.New(),
		UserID:    field.UserID,
		FieldID:   field.ID,
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO activities (id, user_id, field_id, name, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, true, $5, $5)`,
		a.ID, a.UserID, a.FieldID, a.Name, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedActivity: %v", err)
	}
	return a
}

// SeedPath creates a fresh area, field and activity for userID in one call.
func SeedPath(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.CategoryPath {
	t.Helper()
	area := SeedArea(t, pool, userID, "")
	field := SeedField(t, pool, area, "")
	act := SeedActivity(t, pool, field, "")
	return domain.CategoryPath{Area: area, Field: field, Activity: act}
}
