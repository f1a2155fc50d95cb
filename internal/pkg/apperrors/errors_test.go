package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("updating student 7: %w", ErrStudentNotFound)

	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.True(t, errors.Is(err, ErrStudentNotFound))
	assert.Equal(t, "updating student 7: Student not found", err.Error())
}

func TestConflictErrorKeepsRawMessage(t *testing.T) {
	err := NewConflictError("UNIQUE constraint failed: students.email")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "UNIQUE constraint failed: students.email", err.Error())
}

func TestIsMatchesAnyListedError(t *testing.T) {
	err := NewBadRequestError("file is required")

	assert.True(t, Is(err, ErrConflict, ErrResourceNotFound, ErrBadRequest))
	assert.False(t, Is(err, ErrConflict, ErrResourceNotFound))
}

func TestCustomErrorFallbackMessages(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())

	ce := NewCustomError(ErrValidationFailed, "row 3").WithCode("VAL_001").WithDetails(map[string]interface{}{"row": 3})
	assert.Equal(t, "VAL_001", ce.Code)
	assert.Equal(t, 3, ce.Details["row"])
}
