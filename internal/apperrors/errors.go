// Package apperrors defines the error taxonomy shared by the service and
// handler layers. Services wrap these values; handlers map them to HTTP
// status codes with errors.Is / errors.As.
package apperrors

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidCredentials is returned by login for an unknown email and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, unknown, revoked and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated means no bearer token was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means the caller is authenticated but does not own the resource.
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
	// ErrConflict is returned when a unique value (the email) is already taken.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries per-field messages for user-correctable input errors.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err wraps a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
