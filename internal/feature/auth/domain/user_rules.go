package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"task_backend/internal/shared/apperr"
)

const (
	// MinPasswordLength is the minimum number of characters of a password.
	MinPasswordLength = 7

	forbiddenPasswordWord = "password"
)

var validate = validator.New()

// NormalizeName trims name and records a failure on verr when it is empty.
func NormalizeName(verr *apperr.ValidationError, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		verr.Add("name", "is required")
	}
	return name
}

// NormalizeEmail trims and lowercases email and records a failure on verr when it is not an email address.
func NormalizeEmail(verr *apperr.ValidationError, email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		verr.Add("email", "is required")
		return email
	}
	if err := validate.Var(email, "email"); err != nil {
		verr.Add("email", "is invalid")
	}
	return email
}

// NormalizePassword trims password and records a failure on verr when it breaks a password rule.
func NormalizePassword(verr *apperr.ValidationError, password string) string {
	password = strings.TrimSpace(password)
	switch {
	case len(password) < MinPasswordLength:
		verr.Add("password", fmt.Sprintf("must be at least %d characters long", MinPasswordLength))
	case strings.Contains(strings.ToLower(password), forbiddenPasswordWord):
		verr.Add("password", `must not contain "password"`)
	}
	return password
}

// CheckAge records a failure on verr when age is negative.
func CheckAge(verr *apperr.ValidationError, age int) {
	if age < 0 {
		verr.Add("age", "must be a positive number")
	}
}
