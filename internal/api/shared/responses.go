package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// FieldError mirrors the per-field validation entries in error responses.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the failure half of the response envelope. Either Error
// (a single message) or Errors (per-field violations) is populated.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
	TraceID string       `json:"trace_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the error envelope with a single message.
// It also sets the TraceID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Error:   message,
		TraceID: traceID,
	})
}

// RespondWithFieldErrors writes the error envelope carrying every violated
// field, so clients see all problems at once.
func RespondWithFieldErrors(w http.ResponseWriter, r *http.Request, status int, fields []FieldError) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending validation error response",
		"status_code", status,
		"field_count", len(fields),
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Errors:  fields,
		TraceID: traceID,
	})
}

// RespondWithErrorAndLog writes the error envelope and logs the detailed
// error. The full error lands in the logs only; the client sees just the
// sanitized message. 5xx responses log at ERROR, everything else at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", err.Error()),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Success: false,
		Error:   userMessage,
		TraceID: traceID,
	})
}
