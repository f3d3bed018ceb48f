package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/secondchance/secondchance/internal/auth"
	"github.com/secondchance/secondchance/internal/models"
	"github.com/secondchance/secondchance/internal/server/storage"
	"github.com/secondchance/secondchance/internal/validation"
	"github.com/secondchance/secondchance/pkg/api"
)

// EmailHeader identifies the target account on PUT /api/auth/update.
const EmailHeader = "email"

// AuthHandler serves the credential endpoints: register, login, update.
// Each operation validates input, consults the users store, and mints a
// bearer token bound to the user's id.
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	issuer      *auth.TokenIssuer
}

// NewAuthHandler creates a new handler for the credential endpoints.
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		issuer:      issuer,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.Required([]validation.Field{
		{Name: "email", Value: req.Email},
		{Name: "password", Value: req.Password},
		{Name: "firstName", Value: req.FirstName},
		{Name: "lastName", Value: req.LastName},
	}); err != nil {
		h.logger.WarnContext(ctx, "register validation failed", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Friendly pre-check; the unique index on email is the authoritative
	// guard against concurrent duplicate registrations.
	_, err := h.userStorage.FindByEmail(ctx, req.Email)
	if err == nil {
		h.logger.WarnContext(ctx, "email already exists", slog.String("email", req.Email))
		h.sendError(w, "email already exists", http.StatusBadRequest)
		return
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		h.logger.ErrorContext(ctx, "failed to look up email", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, err := h.userStorage.Insert(ctx, &models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			h.logger.WarnContext(ctx, "email already exists", slog.String("email", req.Email))
			h.sendError(w, "email already exists", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to insert user", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", user.Email),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.RegisterResponse{
		AuthToken: token,
		Email:     user.Email,
	}, http.StatusOK)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.Required([]validation.Field{
		{Name: "email", Value: req.Email},
		{Name: "password", Value: req.Password},
	}); err != nil {
		h.logger.WarnContext(ctx, "login validation failed", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", req.Email))
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to look up email", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("email", req.Email))
		h.sendError(w, "wrong password", http.StatusUnauthorized)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("email", user.Email),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.LoginResponse{
		AuthToken: token,
		UserName:  user.FirstName,
		UserEmail: user.Email,
	}, http.StatusOK)
}

// Update handles PUT /api/auth/update. The account is identified by the
// email request header.
func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email := r.Header.Get(EmailHeader)
	if email == "" {
		h.logger.WarnContext(ctx, "update rejected: no email header")
		h.sendError(w, "email not found in request headers", http.StatusBadRequest)
		return
	}

	var req api.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update request", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.Required([]validation.Field{
		{Name: "firstName", Value: req.FirstName},
	}); err != nil {
		h.logger.WarnContext(ctx, "update validation failed", slog.Any("error", err))
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.userStorage.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "update failed: user not found", slog.String("email", email))
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to look up email", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	user, err := h.userStorage.UpdateByEmail(ctx, email, storage.UserPatch{FirstName: req.FirstName})
	if err != nil {
		// Existence was confirmed just above, so a not-found here means the
		// record vanished inside the read-then-write window.
		h.logger.ErrorContext(ctx, "update failed", slog.String("email", email), slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		h.sendError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user updated successfully",
		slog.String("email", user.Email),
		slog.String("user_id", user.ID))

	h.sendJSON(w, api.UpdateResponse{AuthToken: token}, http.StatusOK)
}

// sendJSON writes a JSON response
func (h *AuthHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error response
func (h *AuthHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	h.sendJSON(w, resp, statusCode)
}
