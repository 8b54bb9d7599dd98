package usecase

import (
	"errors"

	"hotel-booking/pkg/utils"
)

// Sentinel errors returned by the services, always wrapped with the subject
// of the failure ("room <id> not found"). Match with errors.Is.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("is not available")
	ErrValidation  = errors.New("validation failed")
)

// ValidationError carries the per-field messages of a rejected request.
// It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationError(errs map[string]string) error {
	return &ValidationError{Fields: errs}
}
