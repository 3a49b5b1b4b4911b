// ===============================
// FILE: internal/handlers/api/v1/badges/badges_controller.go
// ===============================

package badges

import (
	"context"
	"net/http"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// BadgesController handles badge API endpoints
type BadgesController struct {
	badgeService services.BadgeService
	logger       *zap.Logger
}

// NewBadgesController creates a new badges controller
func NewBadgesController(badgeService services.BadgeService, logger *zap.Logger) *BadgesController {
	return &BadgesController{badgeService: badgeService, logger: logger}
}

// List handles the catalog-with-progress view - GET /api/v1/badges
//
// This is strictly read-only: it never awards anything, no matter how many
// requirements the user currently satisfies.
func (c *BadgesController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	views, err := c.badgeService.ListWithProgress(ctx, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, views)
}

// Earned handles the earned badge list - GET /api/v1/badges/earned
func (c *BadgesController) Earned(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	earned, err := c.badgeService.GetEarned(ctx, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, earned)
}

// Trigger handles an explicit award check - POST /api/v1/badges/trigger
//
// Returns only the badges awarded by this call; an empty list means nothing
// new was earned. Safe to call repeatedly.
func (c *BadgesController) Trigger(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	ownerID := contextutils.GetUserID(r.Context())
	newBadges, err := c.badgeService.CheckAndAward(ctx, ownerID)
	if err != nil {
		c.logger.Error("Badge check failed",
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
			zap.Int64("owner_id", ownerID),
			zap.Error(err),
		)
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, map[string]interface{}{
		"new_badges": newBadges,
	})
}

// Stats handles the badge summary - GET /api/v1/badges/stats
func (c *BadgesController) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stats, err := c.badgeService.GetStats(ctx, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, stats)
}
