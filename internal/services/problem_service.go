// file: internal/services/problem_service.go
package services

import (
	"context"

	"dsavault/internal/events"
	"dsavault/internal/models"
	"dsavault/internal/repositories"
	"dsavault/internal/validation"

	"go.uber.org/zap"
)

// problemServiceImpl implements ProblemService
type problemServiceImpl struct {
	problemRepo  repositories.ProblemRepository
	badgeService BadgeService
	aiService    AIService
	bus          *events.Bus
	logger       *zap.Logger
}

// NewProblemService creates a new problem service. aiService may be nil when
// analysis is disabled; bus may be nil when notifications are not wanted.
func NewProblemService(
	problemRepo repositories.ProblemRepository,
	badgeService BadgeService,
	aiService AIService,
	bus *events.Bus,
	logger *zap.Logger,
) ProblemService {
	return &problemServiceImpl{
		problemRepo:  problemRepo,
		badgeService: badgeService,
		aiService:    aiService,
		bus:          bus,
		logger:       logger,
	}
}

// CreateProblem stores a new submission, enriches it with AI analysis when
// available, and runs the badge check. The badge delta rides back on the
// response so the client can show what this submission unlocked.
func (s *problemServiceImpl) CreateProblem(ctx context.Context, req *CreateProblemRequest) (*CreateProblemResponse, error) {
	if req == nil {
		return nil, NewValidationError("request is required", nil)
	}
	if req.OwnerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError(err.Error(), err)
	}

	problem := &models.Problem{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Difficulty:  req.Difficulty,
		Language:    req.Language,
		Topic:       req.Topic,
		Tags:        models.StringArray(req.Tags),
	}

	// Analysis is best effort. A slow or failing model must never block a
	// submission; the problem is simply stored without the analysis fields.
	if s.aiService != nil {
		s.enrichWithAnalysis(ctx, problem, req)
	}

	if err := s.problemRepo.Create(ctx, problem); err != nil {
		return nil, NewStoreError("create problem", err)
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewProblemCreatedEvent(
			problem.OwnerID, problem.ID, problem.Difficulty, problem.Topic,
		))
	}

	newBadges, err := s.badgeService.CheckAndAward(ctx, req.OwnerID)
	if err != nil {
		// The problem is already stored. Surface the submission as a
		// success and let the next check pick the badges up.
		s.logger.Error("Badge check failed after problem creation",
			zap.Int64("owner_id", req.OwnerID),
			zap.Int64("problem_id", problem.ID),
			zap.Error(err),
		)
		newBadges = []*models.EarnedBadge{}
	}

	return &CreateProblemResponse{Problem: problem, NewBadges: newBadges}, nil
}

func (s *problemServiceImpl) enrichWithAnalysis(ctx context.Context, problem *models.Problem, req *CreateProblemRequest) {
	analysis, err := s.aiService.AnalyzeSolution(ctx, &AnalyzeRequest{
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		Language:    req.Language,
	})
	if err != nil {
		s.logger.Warn("Solution analysis failed, storing without it",
			zap.Int64("owner_id", req.OwnerID),
			zap.String("title", req.Title),
			zap.Error(err),
		)
		return
	}

	problem.Intuition = &analysis.Intuition
	problem.Steps = models.StringArray(analysis.Steps)
	problem.TimeComplexity = &analysis.TimeComplexity
	problem.SpaceComplexity = &analysis.SpaceComplexity
}

// GetProblem retrieves one problem scoped to its owner
func (s *problemServiceImpl) GetProblem(ctx context.Context, id, ownerID int64) (*models.Problem, error) {
	if id <= 0 || ownerID <= 0 {
		return nil, NewValidationError("problem id and owner id are required", nil)
	}

	problem, err := s.problemRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, NewStoreError("get problem", err)
	}
	if problem == nil {
		return nil, NewNotFoundError("problem not found")
	}
	return problem, nil
}

// ListProblems returns a page of the owner's problems
func (s *problemServiceImpl) ListProblems(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Problem], error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}

	page, err := s.problemRepo.List(ctx, ownerID, params)
	if err != nil {
		return nil, NewStoreError("list problems", err)
	}
	if page.Data == nil {
		page.Data = []*models.Problem{}
	}
	return page, nil
}

// ReanalyzeProblem runs solution analysis on an already stored problem and
// persists the result. Unlike the best-effort pass during creation, a failure
// here is surfaced: the caller explicitly asked for the analysis.
func (s *problemServiceImpl) ReanalyzeProblem(ctx context.Context, id, ownerID int64) (*models.Problem, error) {
	if s.aiService == nil {
		return nil, NewBusinessError("solution analysis is not enabled", "AI_ANALYSIS_DISABLED")
	}

	problem, err := s.GetProblem(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.aiService.AnalyzeSolution(ctx, &AnalyzeRequest{
		Title:       problem.Title,
		Description: problem.Description,
		Code:        problem.Code,
		Language:    problem.Language,
	})
	if err != nil {
		return nil, err
	}

	problem.Intuition = &analysis.Intuition
	problem.Steps = models.StringArray(analysis.Steps)
	problem.TimeComplexity = &analysis.TimeComplexity
	problem.SpaceComplexity = &analysis.SpaceComplexity

	if err := s.problemRepo.UpdateAnalysis(ctx, problem); err != nil {
		return nil, NewStoreError("update analysis", err)
	}
	return problem, nil
}

// DeleteProblem removes a problem scoped to its owner. Already earned badges
// are never revoked by deletions.
func (s *problemServiceImpl) DeleteProblem(ctx context.Context, id, ownerID int64) error {
	if id <= 0 || ownerID <= 0 {
		return NewValidationError("problem id and owner id are required", nil)
	}

	if err := s.problemRepo.Delete(ctx, id, ownerID); err != nil {
		return NewNotFoundError("problem not found")
	}
	if s.bus != nil {
		s.bus.Publish(ctx, events.NewProblemDeletedEvent(ownerID, id))
	}

	s.logger.Info("Problem deleted",
		zap.Int64("problem_id", id),
		zap.Int64("owner_id", ownerID),
	)
	return nil
}
