package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/services"
)

// UserHandler handles registration, login and token verification.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// CredentialsPayload is the request body for registration and login.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Create handles new account registration.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			http.Error(w, "Username already taken", http.StatusConflict)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

// Login handles authentication and access token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userID, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			http.Error(w, "Invalid credentials", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Login failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	token, err := h.tokens.Issue(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to issue token")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// VerifyToken reports the account ID behind a valid bearer token. The auth
// middleware has already rejected anything invalid.
func (h *UserHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user_id": userID})
}
