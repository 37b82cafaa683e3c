// Package domain defines domain-level errors for the profile feature.
package domain

import (
	"fmt"

	"task_backend/internal/shared/apperr"
)

// ErrAvatarNotFound indicates that the user has not uploaded an avatar.
var ErrAvatarNotFound = fmt.Errorf("avatar %w", apperr.ErrNotFound)
