// ===============================
// FILE: internal/handlers/api/v1/auth/auth_controller.go
// ===============================

package auth

import (
	"context"
	"net/http"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// AuthController handles authentication API endpoints
type AuthController struct {
	authService services.AuthService
	logger      *zap.Logger
}

// NewAuthController creates a new authentication controller
func NewAuthController(authService services.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

// Register handles user registration - POST /api/v1/auth/register
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req services.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	authResp, err := c.authService.Register(ctx, &req)
	if err != nil {
		c.logger.Warn("Registration failed",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		response.WriteError(r.Context(), w, err)
		return
	}

	response.WriteJSON(r.Context(), w, http.StatusCreated, authResp)
}

// Login handles user authentication - POST /api/v1/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req services.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	authResp, err := c.authService.Login(ctx, &req)
	if err != nil {
		c.logger.Warn("Login failed",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		response.WriteError(r.Context(), w, err)
		return
	}

	response.WriteJSON(r.Context(), w, http.StatusOK, authResp)
}
