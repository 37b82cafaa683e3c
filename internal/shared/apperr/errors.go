// Package apperr defines the error taxonomy shared by every feature.
// Features wrap these values so the transport layer can map them with errors.Is / errors.As.
package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a resource does not exist or is not owned by the caller.
	// Both cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned for missing, malformed, invalid or revoked session tokens.
	ErrUnauthorized = errors.New("please authenticate")

	// ErrInvalidCredentials is returned when an email/password pair does not match.
	ErrInvalidCredentials = errors.New("unable to login")

	// ErrFileTooLarge is returned when an upload exceeds the size ceiling.
	ErrFileTooLarge = errors.New("file too large: the limit is 1MB")

	// ErrUnsupportedMedia is returned for disallowed extensions and undecodable images.
	ErrUnsupportedMedia = errors.New("please upload a jpg, jpeg or png image")
)

// FieldError describes one rejected field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError collects every field that failed validation for a single write.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError returns a ValidationError holding a single field failure.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

// Add records a field failure.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// OrNil returns nil when no field failed, so callers can `return verr.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsMedia reports whether err is one of the media rejection errors.
func IsMedia(err error) bool {
	return errors.Is(err, ErrFileTooLarge) || errors.Is(err, ErrUnsupportedMedia)
}
