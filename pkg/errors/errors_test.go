package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewNotFoundError("missing"), http.StatusNotFound},
		{NewValidationError("bad input"), http.StatusBadRequest},
		{NewConflictError("duplicate"), http.StatusConflict},
		{NewUnauthorizedError("sign in"), http.StatusUnauthorized},
		{NewExternalError("provider down", nil), http.StatusBadGateway},
		{NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), tc.err.Message)
	}
}

func TestAppError_UnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("query failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsType_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading cafe: %w", NewNotFoundError("cafe not found"))

	assert.True(t, IsType(err, ErrorTypeNotFound))
	assert.False(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeNotFound))
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(NewValidationError("rating out of range"))
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeValidation, appErr.Type)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
