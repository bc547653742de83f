package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/service/auth"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"validation aggregate", domain.NewValidationError("title", "too short"), http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"wrapped not found", store.NewStoreError("task", "get", "lookup failed", store.ErrTaskNotFound), http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err), tt.name)
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"task not found", store.ErrTaskNotFound, "Task not found"},
		{"user not found", store.ErrUserNotFound, "User not found"},
		{"email exists", store.ErrEmailExists, "A user with this email already exists"},
		{"nil error", nil, "An unexpected error occurred"},
		{"unknown error", errors.New("pg: connection failure"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err), tt.name)
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := store.NewStoreError("user", "create", "insert into users failed", errors.New("mongodb://secret-host"))
	msg := GetSafeErrorMessage(internal)

	assert.NotContains(t, msg, "secret-host")
	assert.NotContains(t, msg, "insert")
}

func TestJSONFieldName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "title", jsonFieldName("Title"))
	assert.Equal(t, "dueDate", jsonFieldName("DueDate"))
	assert.Equal(t, "isImportant", jsonFieldName("IsImportant"))
	assert.Equal(t, "", jsonFieldName(""))
}
