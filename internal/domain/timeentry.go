package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryDraft is a time entry being assembled, typically from voice input.
// Duration is kept in "H:MM:SS" form; times in "HH:MM:SS".
type EntryDraft struct {
	Selection   Selection
	Date        string
	StartTime   string
	EndTime     string
	Duration    string
	Description string
}

// TimeEntry is a persisted record of work time.
type TimeEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AreaID      uuid.UUID
	FieldID     uuid.UUID
	ActivityID  uuid.UUID
	Date        time.Time
	StartTime   *string
	EndTime     *string
	Duration    time.Duration
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AreaTotal is the aggregated tracked time of one area over a period.
type AreaTotal struct {
	AreaID   uuid.UUID
	AreaName string
	Color    string
	Total    time.Duration
	Entries  int
}

// EntryFilter narrows a time entry listing. Zero values mean "no filter".
type EntryFilter struct {
	From       *time.Time
	To         *time.Time
	AreaID     *uuid.UUID
	ActivityID *uuid.UUID
	Limit      int
	Offset     int
}
