// file: internal/services/dashboard_service.go
package services

import (
	"context"
	"time"

	"dsavault/internal/badges"
	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"go.uber.org/zap"
)

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	problemRepo repositories.ProblemRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(problemRepo repositories.ProblemRepository, logger *zap.Logger) DashboardService {
	return &dashboardServiceImpl{
		problemRepo: problemRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// GetSummary assembles the owner's headline numbers from a single snapshot
// read, so the counts and the streak always agree with each other.
func (s *dashboardServiceImpl) GetSummary(ctx context.Context, ownerID int64) (*models.DashboardSummary, error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}

	problems, err := s.problemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("load problem history", err)
	}

	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)

	summary := &models.DashboardSummary{TotalProblems: len(problems)}
	topicCounts := make(map[string]int)
	activity := make([]time.Time, 0, len(problems))

	for _, p := range problems {
		activity = append(activity, p.CreatedAt)
		topicCounts[p.Topic]++

		if p.CreatedAt.After(weekAgo) {
			summary.ThisWeek++
		}
		switch p.Difficulty {
		case "Easy":
			summary.Easy++
		case "Medium":
			summary.Medium++
		case "Hard":
			summary.Hard++
		}
	}

	summary.Streak = badges.CurrentStreak(activity, now)

	best := 0
	for topic, count := range topicCounts {
		if count > best || (count == best && topic < summary.TopTopic) {
			best = count
			summary.TopTopic = topic
		}
	}

	return summary, nil
}

// GetTopicStats returns the owner's per-topic breakdown, most practiced first
func (s *dashboardServiceImpl) GetTopicStats(ctx context.Context, ownerID int64) ([]*models.TopicCount, error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}

	counts, err := s.problemRepo.TopicCounts(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("aggregate topics", err)
	}
	if counts == nil {
		counts = []*models.TopicCount{}
	}
	return counts, nil
}
