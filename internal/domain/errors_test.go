package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("subject", "cannot be empty", ErrEmptyContent)

	assert.Equal(t, "subject cannot be empty", err.Error())
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, fmt.Errorf("create plan: %w", err), ErrValidation)

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &ve))
	assert.Equal(t, "subject", ve.Field)
	assert.False(t, errors.Is(err, ErrInvalidID))
}
