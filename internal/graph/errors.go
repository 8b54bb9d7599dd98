package graph

import (
	"errors"

	"hotel-booking/internal/usecase"
)

const (
	codeNotFound    = "NOT_FOUND"
	codeUnavailable = "UNAVAILABLE"
	codeValidation  = "VALIDATION"
	codeInternal    = "INTERNAL"
)

// resolverError surfaces a machine-readable code under extensions.code.
type resolverError struct {
	code    string
	message string
}

func (e *resolverError) Error() string { return e.message }

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// toResolverError hides internal failure details from clients.
func toResolverError(err error) *resolverError {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		return &resolverError{code: codeNotFound, message: err.Error()}
	case errors.Is(err, usecase.ErrUnavailable):
		return &resolverError{code: codeUnavailable, message: err.Error()}
	case errors.Is(err, usecase.ErrValidation):
		return &resolverError{code: codeValidation, message: err.Error()}
	default:
		return &resolverError{code: codeInternal, message: "internal server error"}
	}
}
