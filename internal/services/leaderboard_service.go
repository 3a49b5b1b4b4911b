// file: internal/services/leaderboard_service.go
package services

import (
	"context"
	"time"

	"dsavault/internal/cache"
	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const (
	leaderboardCacheKey = "leaderboard:global"
	leaderboardLimit    = 50
)

// leaderboardServiceImpl implements LeaderboardService. The leaderboard is a
// global, derived view, so unlike badge progress it is safe to cache briefly.
type leaderboardServiceImpl struct {
	problemRepo repositories.ProblemRepository
	userRepo    repositories.UserRepository
	cache       cache.Cache
	ttl         time.Duration
	logger      *zap.Logger
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	problemRepo repositories.ProblemRepository,
	userRepo repositories.UserRepository,
	c cache.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) LeaderboardService {
	return &leaderboardServiceImpl{
		problemRepo: problemRepo,
		userRepo:    userRepo,
		cache:       c,
		ttl:         ttl,
		logger:      logger,
	}
}

// GetLeaderboard returns the ranked global view, served from cache when fresh
func (s *leaderboardServiceImpl) GetLeaderboard(ctx context.Context) (*models.LeaderboardView, error) {
	var cached models.LeaderboardView
	if hit, err := s.cache.Get(ctx, leaderboardCacheKey, &cached); err != nil {
		s.logger.Warn("Leaderboard cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	view, err := s.buildView(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, leaderboardCacheKey, view, s.ttl); err != nil {
		s.logger.Warn("Leaderboard cache write failed", zap.Error(err))
	}
	return view, nil
}

func (s *leaderboardServiceImpl) buildView(ctx context.Context) (*models.LeaderboardView, error) {
	entries, err := s.problemRepo.LeaderboardRows(ctx, leaderboardLimit)
	if err != nil {
		return nil, NewStoreError("load leaderboard rows", err)
	}

	stats, err := s.problemRepo.GlobalStats(ctx)
	if err != nil {
		return nil, NewStoreError("load global stats", err)
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, NewStoreError("count users", err)
	}

	// Rank order: weighted score, then raw count, then most recent solve.
	slices.SortFunc(entries, func(a, b *models.LeaderboardEntry) int {
		if a.DifficultyScore != b.DifficultyScore {
			return b.DifficultyScore - a.DifficultyScore
		}
		if a.ProblemsSolved != b.ProblemsSolved {
			return b.ProblemsSolved - a.ProblemsSolved
		}
		return compareSolvedAt(b.LastSolvedAt, a.LastSolvedAt)
	})
	for i, e := range entries {
		e.Rank = i + 1
	}
	if entries == nil {
		entries = []*models.LeaderboardEntry{}
	}

	return &models.LeaderboardView{
		TotalUsers:    totalUsers,
		TotalSolved:   stats.TotalSolved,
		ActiveToday:   stats.ActiveToday,
		AvgDifficulty: difficultyLabel(stats.AvgDifficultyScore),
		Entries:       entries,
	}, nil
}

func compareSolvedAt(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// difficultyLabel maps the average weight back to the nearest label
func difficultyLabel(score float64) string {
	switch {
	case score == 0:
		return "N/A"
	case score < 1.5:
		return "Easy"
	case score < 2.5:
		return "Medium"
	default:
		return "Hard"
	}
}
