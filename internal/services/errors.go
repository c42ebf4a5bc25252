package services

import (
	"fmt"
	"net/http"
)

// ServiceError is an error the HTTP layer can render as-is. Errors carries the
// field-level messages of a validation failure.
type ServiceError struct {
	Status  int
	Message string
	Errors  []string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrValidation(errs []string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: "Validation failed", Errors: errs}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: msg}
}

// ErrConflict maps to 400: duplicate records are reported as client errors.
func ErrConflict(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: http.StatusUnauthorized, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: http.StatusForbidden, Message: msg}
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Message: msg}
}

func ErrRateLimited(msg string) error {
	return ServiceError{Status: http.StatusTooManyRequests, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
