// ===============================
// FILE: internal/handlers/api/v1/leaderboard/leaderboard_controller.go
// ===============================

package leaderboard

import (
	"context"
	"net/http"
	"time"

	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// LeaderboardController handles leaderboard API endpoints
type LeaderboardController struct {
	leaderboardService services.LeaderboardService
	logger             *zap.Logger
}

// NewLeaderboardController creates a new leaderboard controller
func NewLeaderboardController(leaderboardService services.LeaderboardService, logger *zap.Logger) *LeaderboardController {
	return &LeaderboardController{leaderboardService: leaderboardService, logger: logger}
}

// Get handles the global ranking - GET /api/v1/leaderboard
func (c *LeaderboardController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	view, err := c.leaderboardService.GetLeaderboard(ctx)
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, view)
}
