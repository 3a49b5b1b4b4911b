// ===============================
// FILE: internal/handlers/api/v1/problems/problems_controller.go
// ===============================

package problems

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"dsavault/internal/contextutils"
	"dsavault/internal/models"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// ProblemsController handles problem API endpoints
type ProblemsController struct {
	problemService services.ProblemService
	logger         *zap.Logger
}

// NewProblemsController creates a new problems controller
func NewProblemsController(problemService services.ProblemService, logger *zap.Logger) *ProblemsController {
	return &ProblemsController{problemService: problemService, logger: logger}
}

// Create handles problem submission - POST /api/v1/problems
//
// The AI analysis can take a while, so this endpoint gets a longer deadline
// than the rest of the API.
func (c *ProblemsController) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	var req services.CreateProblemRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	req.OwnerID = contextutils.GetUserID(r.Context())

	result, err := c.problemService.CreateProblem(ctx, &req)
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	if len(result.NewBadges) > 0 {
		c.logger.Info("Submission unlocked badges",
			zap.Int64("owner_id", req.OwnerID),
			zap.Int("count", len(result.NewBadges)),
		)
	}
	response.WriteJSON(r.Context(), w, http.StatusCreated, result)
}

// List handles problem listing - GET /api/v1/problems
func (c *ProblemsController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ownerID := contextutils.GetUserID(r.Context())
	params := parsePagination(r)

	page, err := c.problemService.ListProblems(ctx, ownerID, params)
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, page)
}

// Get handles single problem retrieval - GET /api/v1/problems/{id}
func (c *ProblemsController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(r)
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	problem, err := c.problemService.GetProblem(ctx, id, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, problem)
}

// Analyze handles analysis regeneration - POST /api/v1/problems/{id}/analyze
func (c *ProblemsController) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	id, err := parseID(r)
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	problem, err := c.problemService.ReanalyzeProblem(ctx, id, contextutils.GetUserID(r.Context()))
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, problem)
}

// Delete handles problem deletion - DELETE /api/v1/problems/{id}
func (c *ProblemsController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := parseID(r)
	if err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}

	if err := c.problemService.DeleteProblem(ctx, id, contextutils.GetUserID(r.Context())); err != nil {
		response.WriteError(r.Context(), w, err)
		return
	}
	response.WriteJSON(r.Context(), w, http.StatusOK, map[string]string{"message": "problem deleted"})
}

func parseID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, services.NewValidationError("invalid problem id", err)
	}
	return id, nil
}

func parsePagination(r *http.Request) models.PaginationParams {
	query := r.URL.Query()
	params := models.PaginationParams{
		Sort:  query.Get("sort"),
		Order: query.Get("order"),
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		params.Offset = offset
	}
	return params
}
