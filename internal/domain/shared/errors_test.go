package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewNotFoundError("Employee not found in this company")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, errors.Is(err, ErrForbidden))
	assert.True(t, IsConflict(NewConflictError("dup")))
}

func TestDomainError_WithCause(t *testing.T) {
	cause := errors.New("driver: unique violation")
	err := ErrAlreadyExists.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, ErrAlreadyExists.Message, err.Error())
}
