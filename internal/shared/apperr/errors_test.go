package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_OrNil(t *testing.T) {
	t.Run("empty error collapses to nil", func(t *testing.T) {
		verr := &ValidationError{}
		assert.NoError(t, verr.OrNil())
	})

	t.Run("nil receiver collapses to nil", func(t *testing.T) {
		var verr *ValidationError
		assert.NoError(t, verr.OrNil())
	})

	t.Run("collected fields survive wrapping", func(t *testing.T) {
		verr := &ValidationError{}
		verr.Add("email", "is invalid")
		verr.Add("password", "is too short")

		err := fmt.Errorf("signup: %w", verr.OrNil())

		var got *ValidationError
		require.True(t, errors.As(err, &got))
		assert.Len(t, got.Fields, 2)
		assert.Equal(t, "validation failed: email: is invalid; password: is too short", got.Error())
	})
}

func TestIsMedia(t *testing.T) {
	assert.True(t, IsMedia(ErrFileTooLarge))
	assert.True(t, IsMedia(fmt.Errorf("%w: timed out", ErrUnsupportedMedia)))
	assert.False(t, IsMedia(ErrNotFound))
	assert.False(t, IsMedia(nil))
}
