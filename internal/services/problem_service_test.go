// file: internal/services/problem_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"dsavault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBadgeService struct {
	delta []*models.EarnedBadge
	err   error
	calls int
}

func (s *stubBadgeService) CheckAndAward(context.Context, int64) ([]*models.EarnedBadge, error) {
	s.calls++
	return s.delta, s.err
}

func (s *stubBadgeService) ListWithProgress(context.Context, int64) ([]*models.ProgressView, error) {
	return nil, nil
}

func (s *stubBadgeService) GetEarned(context.Context, int64) ([]*models.EarnedBadge, error) {
	return nil, nil
}

func (s *stubBadgeService) GetStats(context.Context, int64) (*models.BadgeStats, error) {
	return nil, nil
}

type stubAIService struct {
	analysis *SolutionAnalysis
	err      error
}

func (s *stubAIService) AnalyzeSolution(context.Context, *AnalyzeRequest) (*SolutionAnalysis, error) {
	return s.analysis, s.err
}

func validCreateRequest() *CreateProblemRequest {
	return &CreateProblemRequest{
		OwnerID:     1,
		Title:       "Two Sum",
		Description: "Find two numbers adding to target",
		Code:        "def two_sum(nums, target): ...",
		Difficulty:  "Easy",
		Language:    "Python",
		Topic:       "Arrays",
		Tags:        []string{"hashmap"},
	}
}

func TestCreateProblem_ReturnsBadgeDelta(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeSvc := &stubBadgeService{
		delta: []*models.EarnedBadge{{BadgeID: "first_problem", Name: "First Blood"}},
	}
	svc := NewProblemService(problemRepo, badgeSvc, nil, nil, zap.NewNop())

	resp, err := svc.CreateProblem(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Problem)
	require.Len(t, resp.NewBadges, 1)
	assert.Equal(t, "first_problem", resp.NewBadges[0].BadgeID)
	assert.Equal(t, 1, badgeSvc.calls)
}

func TestCreateProblem_BadgeCheckFailureDoesNotFailSubmission(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	badgeSvc := &stubBadgeService{err: NewStoreError("load earned badges", errors.New("down"))}
	svc := NewProblemService(problemRepo, badgeSvc, nil, nil, zap.NewNop())

	resp, err := svc.CreateProblem(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Empty(t, resp.NewBadges)
	assert.Len(t, problemRepo.problems[1], 1)
}

func TestCreateProblem_AnalysisEnrichesProblem(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	ai := &stubAIService{analysis: &SolutionAnalysis{
		Intuition:       "Use a hash map for O(1) lookups",
		Steps:           []string{"Iterate", "Check complement"},
		TimeComplexity:  "O(n)",
		SpaceComplexity: "O(n)",
	}}
	svc := NewProblemService(problemRepo, &stubBadgeService{}, ai, nil, zap.NewNop())

	resp, err := svc.CreateProblem(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.Problem.Intuition)
	assert.Equal(t, "Use a hash map for O(1) lookups", *resp.Problem.Intuition)
	assert.Equal(t, models.StringArray{"Iterate", "Check complement"}, resp.Problem.Steps)
}

func TestCreateProblem_AnalysisFailureIsNotFatal(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	ai := &stubAIService{err: NewBusinessError("solution analysis unavailable", "AI_ANALYSIS_FAILED")}
	svc := NewProblemService(problemRepo, &stubBadgeService{}, ai, nil, zap.NewNop())

	resp, err := svc.CreateProblem(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.Problem.Intuition)
}

func TestCreateProblem_InvalidDifficulty(t *testing.T) {
	svc := NewProblemService(newFakeProblemRepo(), &stubBadgeService{}, nil, nil, zap.NewNop())

	req := validCreateRequest()
	req.Difficulty = "Impossible"
	_, err := svc.CreateProblem(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestReanalyzeProblem_UpdatesStoredAnalysis(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	seedProblems(problemRepo, 1, 1, "Easy", time.Now())
	ai := &stubAIService{analysis: &SolutionAnalysis{
		Intuition:       "Sliding window over the array",
		Steps:           []string{"Expand", "Shrink"},
		TimeComplexity:  "O(n)",
		SpaceComplexity: "O(1)",
	}}
	svc := NewProblemService(problemRepo, &stubBadgeService{}, ai, nil, zap.NewNop())

	problem, err := svc.ReanalyzeProblem(context.Background(), 1, 1)
	require.NoError(t, err)
	require.NotNil(t, problem.Intuition)
	assert.Equal(t, "Sliding window over the array", *problem.Intuition)
	assert.True(t, problemRepo.writeCalled)
}

func TestReanalyzeProblem_DisabledWithoutAI(t *testing.T) {
	problemRepo := newFakeProblemRepo()
	seedProblems(problemRepo, 1, 1, "Easy", time.Now())
	svc := NewProblemService(problemRepo, &stubBadgeService{}, nil, nil, zap.NewNop())

	_, err := svc.ReanalyzeProblem(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "BUSINESS_ERROR"))
}

func TestGetProblem_NotFound(t *testing.T) {
	svc := NewProblemService(newFakeProblemRepo(), &stubBadgeService{}, nil, nil, zap.NewNop())

	_, err := svc.GetProblem(context.Background(), 99, 1)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
