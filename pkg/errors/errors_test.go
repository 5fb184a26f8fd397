package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := NotFound("patient", 42)
	wrapped := fmt.Errorf("failed to get patient: %w", err)

	assert.True(t, IsNotFound(wrapped))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.False(t, IsConflict(wrapped))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(fmt.Errorf("boom")))
	assert.False(t, IsValidation(fmt.Errorf("boom")))
}

func TestUnavailableKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Unavailable(cause)

	assert.True(t, IsUnavailable(err))
	assert.ErrorContains(t, err, "storage unavailable")
	assert.Equal(t, cause, err.Unwrap())
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "doctor with ID 7 not found", NotFound("doctor", 7).Error())
	assert.Equal(t, "notes are required", Validation("notes are required").Error())
	assert.Equal(t, "prescription PDF export is not implemented", Unimplemented("prescription PDF export").Error())
}
