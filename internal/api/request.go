package api

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"task_backend/internal/shared/apperr"
)

// DecodeStrict decodes exactly one JSON object into v, rejecting keys that v does not declare.
// Unknown keys, type mismatches and trailing input are reported as a ValidationError naming the field.
func DecodeStrict(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return BindError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.NewValidationError("body", "must contain a single JSON object")
	}
	return nil
}

// BindError converts a JSON binding failure into a ValidationError naming the offending field.
func BindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.NewValidationError(typeErr.Field, "has the wrong type")
	}
	// encoding/json reports unknown keys only through the message text
	const unknownPrefix = `json: unknown field "`
	if msg := err.Error(); strings.HasPrefix(msg, unknownPrefix) {
		field := strings.TrimSuffix(strings.TrimPrefix(msg, unknownPrefix), `"`)
		return apperr.NewValidationError(field, "is not an updatable field")
	}
	return apperr.NewValidationError("body", "must be a valid JSON object")
}
