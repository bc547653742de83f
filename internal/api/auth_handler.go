package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mhoudret/taskdeck-api/internal/api/shared"
	"github.com/mhoudret/taskdeck-api/internal/domain"
	"github.com/mhoudret/taskdeck-api/internal/service/auth"
	"github.com/mhoudret/taskdeck-api/internal/store"
)

// AuthHandler holds dependencies for authentication endpoints.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validator        *validator.Validate
	logger           *slog.Logger
	timeFunc         func() time.Time
}

// NewAuthHandler creates a new AuthHandler with its dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		panic("logger must not be nil for AuthHandler") // ALLOW-PANIC
	}
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validator:        validator.New(),
		logger:           logger.With(slog.String("component", "auth_handler")),
		timeFunc:         time.Now,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))

	var req RegisterRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	user, err := domain.NewUser(req.Email, req.FirstName, req.LastName)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	hashed, err := h.passwordHasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}
	user.HashedPassword = hashed

	if err := h.userStore.Create(ctx, user); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token after registration",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.Hex()))
		HandleServiceError(w, r, err)
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    userToResponse(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))

	var req LoginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	// Unknown email and wrong password produce the same response so the
	// endpoint cannot be used to enumerate accounts.
	user, err := h.userStore.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		log.Error("failed to generate token at login",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.Hex()))
		HandleServiceError(w, r, err)
		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    userToResponse(user),
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Success: true,
		User:    userToResponse(user),
	})
}

// UpdateMe handles PUT /api/auth/me. Only profile fields may change;
// email and role are immutable through this endpoint.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := getUserFromContext(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	user.UpdatedAt = h.timeFunc().UTC()

	if err := h.userStore.Update(ctx, user); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ProfileResponse{
		Success: true,
		User:    userToResponse(user),
	})
}

// ChangePassword handles PUT /api/auth/change-password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With(slog.String("trace_id", shared.GetTraceID(ctx)))

	user, ok := getUserFromContext(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithFieldErrors(w, r, http.StatusBadRequest, validationFieldErrors(err))
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.CurrentPassword); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := h.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		log.Error("failed to hash new password", slog.String("error", err.Error()))
		HandleServiceError(w, r, err)
		return
	}
	user.HashedPassword = hashed
	user.UpdatedAt = h.timeFunc().UTC()

	if err := h.userStore.Update(ctx, user); err != nil {
		HandleServiceError(w, r, err)
		return
	}

	log.Info("password changed", slog.String("user_id", user.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Password updated successfully",
	})
}
