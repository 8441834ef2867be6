package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/userdir/internal/logger"
	"github.com/dtroode/userdir/internal/model"
)

// AuthService defines the login operation.
type AuthService interface {
	Login(ctx context.Context, params model.LoginParams) (string, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	errors      *ErrorTranslator
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, errors *ErrorTranslator, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		errors:      errors,
		logger:      logger,
	}
}

// Login exchanges an email for a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var params model.LoginParams
	if err := decodeJSON(w, r, &params); err != nil {
		h.errors.Write(w, r, err)
		return
	}

	token, err := h.authService.Login(r.Context(), params)
	if err != nil {
		h.logger.Debug("Auth handler: login failed",
			"error", err.Error())
		h.errors.Write(w, r, err)
		return
	}

	writeData(w, http.StatusOK, tokenData{Token: token})
}
