// Package apperror defines the error values shared by repositories and
// usecases. Callers match them with errors.Is.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate value")
	ErrProtected         = errors.New("referenced by dependent rows")
	ErrInvalidReference  = errors.New("invalid reference")
	ErrCycle             = errors.New("category cycle")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidLogin      = errors.New("invalid username or password")
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError is returned when one or more fields fail validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasField reports whether field was rejected.
func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, rule, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}
