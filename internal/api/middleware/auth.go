package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mhoudret/taskdeck-api/internal/api/shared"
	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/service/auth"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// AuthMiddleware validates bearer tokens and loads the authenticated user
// into the request context.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates middleware for authenticating requests.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		panic("logger must not be nil for AuthMiddleware") // ALLOW-PANIC
	}
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
		logger:     logger.With(slog.String("component", "auth_middleware")),
	}
}

// Authenticate verifies the Authorization header, resolves the user, and
// stores both the user ID and the user in the request context. Requests
// without a valid token never reach the wrapped handler.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenString, err := extractBearerToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			m.logger.Debug("token validation failed",
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusUnauthorized, message)
			return
		}

		// A valid token for a since-deleted account must not authenticate.
		user, err := m.userStore.GetByID(ctx, claims.UserID)
		if err != nil {
			m.logger.Debug("token user lookup failed",
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("user_id", claims.UserID.Hex()),
				slog.String("error", err.Error()))
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx = context.WithValue(ctx, shared.UserIDContextKey, user.ID)
		ctx = context.WithValue(ctx, shared.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole restricts a route subtree to users holding one of the given
// roles. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
			if !ok || user == nil {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			shared.RespondWithError(w, r, http.StatusForbidden,
				fmt.Sprintf("Role %s is not authorized to access this resource", user.Role))
		})
	}
}

// extractBearerToken pulls the token out of the Authorization header.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}
