package timeentry

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

// ListInput holds the parameters for listing entries. Zero values mean "no filter".
type ListInput struct {
	From       *time.Time
	To         *time.Time
	AreaID     *uuid.UUID
	ActivityID *uuid.UUID
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.From != nil && i.To != nil && i.To.Before(*i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not be before from"})
	}
	if i.Limit < 0 || i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i ListInput) filter() domain.EntryFilter {
	limit := i.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	return domain.EntryFilter{
		From:       i.From,
		To:         i.To,
		AreaID:     i.AreaID,
		ActivityID: i.ActivityID,
		Limit:      limit,
		Offset:     i.Offset,
	}
}

// SummaryInput bounds the reporting period. Both ends are inclusive dates.
type SummaryInput struct {
	From *time.Time
	To   *time.Time
}

// Validate checks all fields and collects all errors.
func (i SummaryInput) Validate() error {
	if i.From != nil && i.To != nil && i.To.Before(*i.From) {
		return domain.NewValidationError("to", "must not be before from")
	}
	return nil
}

// validateDraft checks a draft for saving and returns the parsed date and
// duration. Category ownership is checked separately.
func validateDraft(d domain.EntryDraft) (time.Time, time.Duration, error) {
	var errs []domain.FieldError

	if d.Selection.AreaID == nil {
		errs = append(errs, domain.FieldError{Field: "area_id", Message: "required"})
	}
	if d.Selection.FieldID == nil {
		errs = append(errs, domain.FieldError{Field: "field_id", Message: "required"})
	}
	if d.Selection.ActivityID == nil {
		errs = append(errs, domain.FieldError{Field: "activity_id", Message: "required"})
	}

	var date time.Time
	if d.Date == "" {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	} else {
		var err error
		date, err = time.Parse(domain.DateLayout, d.Date)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}

	var dur time.Duration
	if d.Duration == "" {
		errs = append(errs, domain.FieldError{Field: "duration", Message: "required"})
	} else {
		var err error
		dur, err = domain.ParseClock(d.Duration)
		switch {
		case err != nil:
			errs = append(errs, domain.FieldError{Field: "duration", Message: "must be H:MM:SS"})
		case dur <= 0:
			errs = append(errs, domain.FieldError{Field: "duration", Message: "must be positive"})
		case dur > MaxEntryDuration:
			errs = append(errs, domain.FieldError{Field: "duration", Message: "max 24 hours"})
		}
	}

	for _, t := range []struct{ field, value string }{{"start_time", d.StartTime}, {"end_time", d.EndTime}} {
		if t.value == "" {
			continue
		}
		if _, err := domain.ParseTimeOfDay(t.value); err != nil {
			errs = append(errs, domain.FieldError{Field: t.field, Message: "must be HH:MM:SS"})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, 0, &domain.ValidationError{Errors: errs}
	}
	return date, dur, nil
}
