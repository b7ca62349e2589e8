package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError_PassesThroughWrapped(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFound("Ticket"))

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, "Ticket not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
	assert.True(t, IsNotFound(wrapped))
}

func TestToDomainError_UnknownBecomesInternal(t *testing.T) {
	cause := errors.New("connection reset")

	de := ToDomainError(cause)
	require.NotNil(t, de)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, "Internal server error", de.Message)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
	assert.NotContains(t, de.Message, "connection reset")
}

func TestToDomainError_Nil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError([]FieldError{{Field: "category", Message: "Invalid category"}})

	assert.True(t, IsValidation(err))
	assert.False(t, IsNotFound(err))
	de := ToDomainError(err)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	require.Len(t, de.Fields, 1)
	assert.Equal(t, "category", de.Fields[0].Field)
}
