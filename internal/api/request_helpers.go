package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mhoudret/taskdeck-api/internal/api/shared"
	"github.com/mhoudret/taskdeck-api/internal/domain"
)

// DecodeJSON decodes the request body into dst and writes a 400 response
// if the body is missing or malformed. Returns false when the caller
// should stop processing.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// getUserIDFromContext extracts the authenticated user's ID placed in the
// request context by the auth middleware.
func getUserIDFromContext(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(primitive.ObjectID)
	if !ok || userID.IsZero() {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return primitive.NilObjectID, false
	}
	return userID, true
}

// getUserFromContext extracts the authenticated user loaded by the auth
// middleware.
func getUserFromContext(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	if !ok || user == nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return nil, false
	}
	return user, true
}

// getPathObjectID parses the named chi URL parameter as an ObjectID and
// writes a 400 response when it is malformed.
func getPathObjectID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid identifier")
		return primitive.NilObjectID, false
	}
	return id, true
}
