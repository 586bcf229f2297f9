// Package http provides the JSON-over-HTTP binding of the tracker's
// operations: request decoding, service dispatch and error mapping.
package http

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates an account with a unique username and email.
	Register(ctx context.Context, username, password, email string) error
	// Login checks the password and returns a signed token.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Logger receives unexpected failures.
	Logger *zap.Logger
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /auth/register.
// It answers 201 {"message":"User registered"} on success.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	if err := h.AuthService.Register(r.Context(), req.Username, req.Password, req.Email); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusCreated, "User registered")
}

// Login handles POST /auth/login.
// It answers 200 {"token": "..."} on success and 401 for bad credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		badBody(w)
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
