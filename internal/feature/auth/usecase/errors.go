// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"fmt"

	"task_backend/internal/shared/apperr"
)

// ErrInvalidToken is returned when a token fails decoding, names an unknown user,
// or is no longer part of that user's token set. The cause is deliberately not exposed.
var ErrInvalidToken = fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
