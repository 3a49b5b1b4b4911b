// file: internal/repositories/interfaces.go
package repositories

import (
	"context"
	"time"

	"dsavault/internal/models"
)

// ===============================
// CORE REPOSITORY INTERFACES
// ===============================

// UserRepository defines the contract for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	SetReminderPreference(ctx context.Context, userID int64, enabled bool) error
	GetReminderRecipients(ctx context.Context, inactiveSince time.Time) ([]*models.User, error)
}

// ProblemRepository defines the contract for problem data operations
type ProblemRepository interface {
	Create(ctx context.Context, problem *models.Problem) error
	GetByID(ctx context.Context, id, ownerID int64) (*models.Problem, error)
	Delete(ctx context.Context, id, ownerID int64) error
	List(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Problem], error)

	// FindByOwner returns the owner's full problem snapshot in creation
	// order. The badge engine re-reads it on every evaluation instead of
	// caching anything.
	FindByOwner(ctx context.Context, ownerID int64) ([]*models.Problem, error)

	UpdateAnalysis(ctx context.Context, problem *models.Problem) error

	// Aggregations
	TopicCounts(ctx context.Context, ownerID int64) ([]*models.TopicCount, error)
	GlobalStats(ctx context.Context) (*GlobalProblemStats, error)
	LeaderboardRows(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// BadgeRepository defines the contract for earned-badge persistence. Insert
// must return ErrDuplicateBadge when the (owner_id, badge_id) unique index
// rejects the row; that conflict is the engine's only concurrency control.
type BadgeRepository interface {
	Insert(ctx context.Context, badge *models.EarnedBadge) error
	FindByOwner(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error)
}

// GlobalProblemStats aggregates problem activity across all users
type GlobalProblemStats struct {
	TotalSolved        int     `json:"total_solved"`
	ActiveToday        int     `json:"active_today"`
	AvgDifficultyScore float64 `json:"avg_difficulty_score"`
}
