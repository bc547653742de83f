package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	recorder := httptest.NewRecorder()

	RespondWithJSON(recorder, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "world", body["hello"])
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context()))
	recorder := httptest.NewRecorder()

	RespondWithError(recorder, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Task not found", resp.Error)
	assert.Len(t, resp.TraceID, 32, "trace ID should be 16 random bytes hex-encoded")
	assert.Empty(t, resp.Errors)
}

func TestRespondWithFieldErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	recorder := httptest.NewRecorder()

	fields := []FieldError{
		{Field: "title", Message: "too short"},
		{Field: "dueDate", Message: "must be today or in the future"},
	}
	RespondWithFieldErrors(recorder, req, http.StatusBadRequest, fields)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "title", resp.Errors[0].Field)
	assert.Equal(t, "dueDate", resp.Errors[1].Field)
}

func TestRespondWithErrorAndLogHidesDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	recorder := httptest.NewRecorder()

	internal := errors.New("connection refused to mongodb://internal-host:27017")
	RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError, "An unexpected error occurred", internal)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.NotContains(t, recorder.Body.String(), "internal-host", "internal details must not reach the client")
}

func TestGetTraceIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	assert.Empty(t, GetTraceID(req.Context()))
}

func TestTraceIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ctx := SetTraceID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
		id := GetTraceID(ctx)
		require.Len(t, id, 32)
		assert.False(t, seen[id], "trace IDs should not repeat")
		seen[id] = true
	}
}
