package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the auth layer.
var (
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")
	ErrTokenRevoked         = fmt.Errorf("token has been revoked")

	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("authorization header is malformed")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrForbidden          = fmt.Errorf("access denied")

	ErrActorNotFoundInContext = fmt.Errorf("actor not found in request context")
)

// ValidationError reports that input violates a data-model invariant.
// Fields maps the offending field name to a human-readable reason.
// Always recoverable by the caller correcting input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Fields: map[string]string{field: fmt.Sprintf(format, args...)}}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func NewNotFoundError(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// PermissionError reports that the actor lacks authorization for the
// requested operation. It deliberately carries no record details.
type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	if e.Reason == "" {
		return "permission denied"
	}
	return "permission denied: " + e.Reason
}

func NewPermissionError(reason string) error {
	return &PermissionError{Reason: reason}
}

// HttpError is the transport-level error envelope. Controllers and
// middleware wrap lower errors into it when a specific status code and
// user-facing message are already known.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}
