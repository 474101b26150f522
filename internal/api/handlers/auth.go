package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/quipufin/factoring-backend/internal/api/request"
	"github.com/quipufin/factoring-backend/internal/service"
)

// AuthHandler handles registration and login HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		respondServiceError(w, "Failed to register user", err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login checks the credentials and returns a session token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	session, err := h.authService.Login(req)
	if err != nil {
		respondServiceError(w, "Failed to log in", err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}
