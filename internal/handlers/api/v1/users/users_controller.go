// ===============================
// FILE: internal/handlers/api/v1/users/users_controller.go
// ===============================

package users

import (
	"context"
	"net/http"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// UsersController handles account API endpoints
type UsersController struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersController creates a new users controller
func NewUsersController(userService services.UserService, logger *zap.Logger) *UsersController {
	return &UsersController{userService: userService, logger: logger}
}

// Me handles profile retrieval - GET /api/v1/users/me
func (c *UsersController) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := c.userService.GetProfile(ctx, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, user)
}

type reminderPreferenceRequest struct {
	Enabled bool `json:"enabled"`
}

// SetReminders handles reminder preference updates - PUT /api/v1/users/me/reminders
func (c *UsersController) SetReminders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req reminderPreferenceRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	userID := contextutils.GetUserID(r.Context())
	if err := c.userService.SetReminderPreference(ctx, userID, req.Enabled); err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, map[string]bool{"email_reminders_enabled": req.Enabled})
}
