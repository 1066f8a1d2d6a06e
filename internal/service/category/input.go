package category

import (
	"regexp"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

const maxNameLen = 100

var colorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateName(field, name string) []domain.FieldError {
	name = cleanName(name)
	if name == "" {
		return []domain.FieldError{{Field: field, Message: "required"}}
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return []domain.FieldError{{Field: field, Message: "max 100 characters"}}
	}
	return nil
}

func validationResult(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// CreateAreaInput holds the parameters for creating an area.
type CreateAreaInput struct {
	Name  string
	Color string // empty means domain.DefaultAreaColor
}

// Validate checks all fields and collects all errors.
func (i CreateAreaInput) Validate() error {
	errs := validateName("name", i.Name)
	if i.Color != "" && !colorRe.MatchString(i.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be #RRGGBB"})
	}
	return validationResult(errs)
}

// CreateFieldInput holds the parameters for creating a field.
type CreateFieldInput struct {
	AreaID uuid.UUID
	Name   string
}

// Validate checks all fields and collects all errors.
func (i CreateFieldInput) Validate() error {
	var errs []domain.FieldError
	if i.AreaID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "area_id", Message: "required"})
	}
	errs = append(errs, validateName("name", i.Name)...)
	return validationResult(errs)
}

// CreateActivityInput holds the parameters for creating an activity.
type CreateActivityInput struct {
	FieldID uuid.UUID
	Name    string
}

// Validate checks all fields and collects all errors.
func (i CreateActivityInput) Validate() error {
	var errs []domain.FieldError
	if i.FieldID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "field_id", Message: "required"})
	}
	errs = append(errs, validateName("name", i.Name)...)
	return validationResult(errs)
}

// UpdateAreaInput holds the parameters for updating an area.
type UpdateAreaInput struct {
	AreaID uuid.UUID
	Name   *string
	Color  *string
}

// Validate checks all fields and collects all errors.
func (i UpdateAreaInput) Validate() error {
	var errs []domain.FieldError
	if i.AreaID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "area_id", Message: "required"})
	}
	if i.Name == nil && i.Color == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Name != nil {
		errs = append(errs, validateName("name", *i.Name)...)
	}
	if i.Color != nil && !colorRe.MatchString(*i.Color) {
		errs = append(errs, domain.FieldError{Field: "color", Message: "must be #RRGGBB"})
	}
	return validationResult(errs)
}

// RenameInput holds the parameters for renaming a field or an activity.
type RenameInput struct {
	ID   uuid.UUID
	Name string
}

// Validate checks all fields and collects all errors.
func (i RenameInput) Validate() error {
	var errs []domain.FieldError
	if i.ID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	errs = append(errs, validateName("name", i.Name)...)
	return validationResult(errs)
}
