// ===============================
// FILE: internal/handlers/api/v1/export/export_controller.go
// ===============================

package export

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// ExportController handles export API endpoints
type ExportController struct {
	exportService services.ExportService
	logger        *zap.Logger
}

// NewExportController creates a new export controller
func NewExportController(exportService services.ExportService, logger *zap.Logger) *ExportController {
	return &ExportController{exportService: exportService, logger: logger}
}

// CSV streams the problem history - GET /api/v1/export/csv
func (c *ExportController) CSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	filename := fmt.Sprintf("dsa-vault-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	ownerID := contextutils.GetUserID(r.Context())
	if err := c.exportService.ExportCSV(ctx, ownerID, w); err != nil {
		// Headers may already be out; log and fall back to the error body.
		c.logger.Error("CSV export failed",
			zap.Int64("owner_id", ownerID),
			zap.Error(err),
		)
		response.WriteError(r.Context(), w, err)
	}
}
