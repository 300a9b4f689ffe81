package handler

import (
	"net/http"

	"gellies-store/internal/model"
	"gellies-store/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	service service.AuthService
	opts    Options
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, opts Options, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		opts:    opts,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// credentials decodes and validates the {email, password} body.
func (h *AuthHandler) credentials(r *http.Request) (*model.CredentialsRequest, error) {
	var req model.CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if err := validate.Struct(&req); err != nil {
		return nil, model.ErrMissingCredentials
	}
	return &req, nil
}

// Register handles POST /api/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := h.credentials(r)
	if err != nil {
		failure(w, r, err, "Registration failed", h.opts, h.logger)
		return
	}

	if err := h.service.Register(r.Context(), req); err != nil {
		failure(w, r, err, "Registration failed", h.opts, h.logger)
		return
	}

	writeMessage(w, "Registration successful")
}

// Login handles POST /api/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := h.credentials(r)
	if err != nil {
		failure(w, r, err, "Login failed", h.opts, h.logger)
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		failure(w, r, err, "Login failed", h.opts, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Message: "Login successful",
		User:    model.LoginUser{Email: user.Email},
	})
}
