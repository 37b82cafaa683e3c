// Package domain defines domain-level errors and field rules for the auth feature.
package domain

import (
	"errors"
	"fmt"

	"task_backend/internal/shared/apperr"
)

var (
	// ErrEmailAlreadyExists indicates that another user already owns the email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
)
