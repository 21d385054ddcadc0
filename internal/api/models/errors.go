package models

import (
	"errors"
	"fmt"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrMissingField       = errors.New("missing field")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failure")
	ErrNotFound           = errors.New("not found")
)

// FieldError reports which field broke which rule.
type FieldError struct {
	Field   string
	Kind    error
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func missingField(field string) error {
	return &FieldError{Field: field, Kind: ErrMissingField, Message: field + " is required"}
}

func invalidField(field, message string) error {
	return &FieldError{Field: field, Kind: ErrValidation, Message: message}
}

// Kind reduces err to one of the error kinds, or nil when it is none of them.
func Kind(err error) error {
	for _, kind := range []error{
		ErrMissingField,
		ErrDuplicateUsername,
		ErrInvalidCredentials,
		ErrUnauthorized,
		ErrValidation,
		ErrNotFound,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
