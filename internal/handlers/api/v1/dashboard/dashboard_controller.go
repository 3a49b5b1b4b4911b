// ===============================
// FILE: internal/handlers/api/v1/dashboard/dashboard_controller.go
// ===============================

package dashboard

import (
	"context"
	"net/http"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// DashboardController handles dashboard API endpoints
type DashboardController struct {
	dashboardService services.DashboardService
	logger           *zap.Logger
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(dashboardService services.DashboardService, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

// Summary handles the headline view - GET /api/v1/dashboard/summary
func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := c.dashboardService.GetSummary(ctx, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, summary)
}

// Topics handles the per-topic breakdown - GET /api/v1/dashboard/topics
func (c *DashboardController) Topics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	topics, err := c.dashboardService.GetTopicStats(ctx, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, topics)
}
