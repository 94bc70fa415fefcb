package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"revoked token", auth.ErrTokenRevoked, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"password too long", domain.ErrPasswordTooLong, http.StatusBadRequest},
		{"empty title", domain.ErrEmptyTitle, http.StatusBadRequest},
		{"title too long", domain.ErrTitleTooLong, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("getting task: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown", errors.New("database exploded"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	// Internal detail must never surface in the client-facing message.
	internalErr := fmt.Errorf("pq: connection to host db.internal failed: %w", errors.New("secret detail"))
	msg := GetSafeErrorMessage(internalErr)
	assert.Equal(t, "An unexpected error occurred", msg)

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	validationErr := domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
	assert.Equal(t, "Invalid title: cannot be empty", GetSafeErrorMessage(validationErr))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()
	err := v.Struct(RegisterRequest{Email: "not-an-email", Password: "password1234", FullName: "Test"})
	assert.Error(t, err)

	msg := SanitizeValidationError(err)
	assert.Contains(t, msg, "Email")
	assert.NotContains(t, msg, "not-an-email", "submitted values must not echo back")
}
