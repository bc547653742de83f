package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mhoudret/taskdeck-api/internal/api/shared"
	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/service/auth"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors; missing and not-owned are indistinguishable
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors. Credential failures stay generic so callers
	// cannot probe which accounts exist.
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Invalid token"

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return "You are not allowed to perform this action"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "A user with this email already exists"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation), errors.Is(err, store.ErrInvalidEntity):
		return "Validation error"

	case errors.Is(err, domain.ErrEmptyEmail),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyPassword),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrPasswordTooLong):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError writes the envelope for an error coming out of a
// store or service call. Validation errors carry their full field list;
// everything else is reduced to a status code and a sanitized message.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, domainFieldErrors(verr))
		return
	}

	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status >= http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}
	shared.RespondWithError(w, r, status, message)
}

// validationFieldErrors flattens a validator error into the per-field list
// for the response envelope, reporting every violation rather than only
// the first.
func validationFieldErrors(err error) []shared.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []shared.FieldError{{Field: "body", Message: "validation failed"}}
	}

	fields := make([]shared.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, shared.FieldError{
			Field:   jsonFieldName(fe.Field()),
			Message: validationTagMessage(fe.Tag()),
		})
	}
	return fields
}

// domainFieldErrors converts domain validation fields to the shared type.
func domainFieldErrors(verr *domain.ValidationError) []shared.FieldError {
	fields := make([]shared.FieldError, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, shared.FieldError{Field: f.Field, Message: f.Message})
	}
	return fields
}

// jsonFieldName lowercases the first rune of a struct field name, which
// matches the JSON naming used throughout the request types.
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return string(field[0]|0x20) + field[1:]
}

// validationTagMessage maps validation tags to user-friendly error messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
