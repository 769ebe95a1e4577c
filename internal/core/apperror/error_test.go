package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassHelpers(t *testing.T) {
	dup := NewDuplicate("category", "name", "Burger")
	wrapped := fmt.Errorf("create category: %w", dup)

	assert.True(t, IsConflict(wrapped))
	assert.True(t, IsConflict(NewConflict("set default to another address")))
	assert.False(t, IsConflict(NewNotFound("address", "1")))

	assert.True(t, IsNotFound(fmt.Errorf("x: %w", NewNotFound("product", "slug"))))
	assert.True(t, IsInvalidInput(NewInvalidInput("rating", "bad rating")))
	assert.False(t, IsInvalidInput(errors.New("plain")))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(NewInvalidInput("", "x")))
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(NewDuplicate("a", "b", "c")))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(NewStorage(errors.New("boom"))))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestInvalidInputCarriesField(t *testing.T) {
	err := NewInvalidInput("phone_number", "invalid phone number")
	assert.Equal(t, "phone_number", err.Details["field"])

	noField := NewInvalidInput("", "passwords do not match")
	assert.Nil(t, noField.Details)
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorage(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}
