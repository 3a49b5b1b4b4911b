// file: internal/services/interface.go
package services

import (
	"context"
	"io"
	"time"

	"dsavault/internal/models"
)

// ===============================
// SERVICE INTERFACES
// ===============================

// BadgeService is the achievement engine. CheckAndAward is the only mutating
// entry point; everything else is read-only and safe to call arbitrarily
// often.
type BadgeService interface {
	// CheckAndAward evaluates every not-yet-earned catalog entry against
	// the owner's current problem history and persists newly satisfied
	// badges. It returns exactly the badges awarded during this call.
	CheckAndAward(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error)

	// ListWithProgress returns the full catalog with per-badge progress:
	// earned entries unlocked at 100, the rest locked with live progress.
	ListWithProgress(ctx context.Context, ownerID int64) ([]*models.ProgressView, error)

	// GetEarned returns the owner's earned badges, newest first.
	GetEarned(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error)

	// GetStats summarizes earned badges by category and tier.
	GetStats(ctx context.Context, ownerID int64) (*models.BadgeStats, error)
}

// ProblemService manages problem records
type ProblemService interface {
	CreateProblem(ctx context.Context, req *CreateProblemRequest) (*CreateProblemResponse, error)
	GetProblem(ctx context.Context, id, ownerID int64) (*models.Problem, error)
	ListProblems(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Problem], error)
	DeleteProblem(ctx context.Context, id, ownerID int64) error

	// ReanalyzeProblem regenerates the AI analysis for a stored problem,
	// for submissions created while analysis was disabled or failing.
	ReanalyzeProblem(ctx context.Context, id, ownerID int64) (*models.Problem, error)
}

// AuthService handles registration and login
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*TokenClaims, error)
}

// UserService manages account profile and preferences
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	SetReminderPreference(ctx context.Context, userID int64, enabled bool) error

	// SendRevisionReminders mails opted-in users inactive for the given
	// duration and returns how many reminders went out.
	SendRevisionReminders(ctx context.Context, inactiveFor time.Duration) (int, error)
}

// DashboardService assembles per-user dashboard views
type DashboardService interface {
	GetSummary(ctx context.Context, ownerID int64) (*models.DashboardSummary, error)
	GetTopicStats(ctx context.Context, ownerID int64) ([]*models.TopicCount, error)
}

// LeaderboardService assembles the global ranking
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context) (*models.LeaderboardView, error)
}

// ExportService streams a user's problem history
type ExportService interface {
	ExportCSV(ctx context.Context, ownerID int64, w io.Writer) error
}

// AIService generates solution analysis for a submitted problem
type AIService interface {
	AnalyzeSolution(ctx context.Context, req *AnalyzeRequest) (*SolutionAnalysis, error)
}

// EmailService delivers notification emails
type EmailService interface {
	SendBadgeEarned(ctx context.Context, user *models.User, badge *models.EarnedBadge) error
	SendRevisionReminder(ctx context.Context, user *models.User) error
}

// ===============================
// REQUEST / RESPONSE TYPES
// ===============================

// CreateProblemRequest carries a new problem submission
type CreateProblemRequest struct {
	OwnerID     int64    `json:"-"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Code        string   `json:"code" validate:"required"`
	Difficulty  string   `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Language    string   `json:"language" validate:"required,oneof=Java Python JavaScript C++ Go"`
	Topic       string   `json:"topic" validate:"required,max=100"`
	Tags        []string `json:"tags" validate:"max=10,dive,max=50"`
}

// CreateProblemResponse bundles the stored problem with the badge delta the
// submission triggered, so the client can drive celebratory UI.
type CreateProblemResponse struct {
	Problem   *models.Problem       `json:"problem"`
	NewBadges []*models.EarnedBadge `json:"new_badges"`
}

// RegisterRequest carries a registration submission
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest carries a login submission
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a signed token plus the authenticated user
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// TokenClaims is the validated identity carried by a JWT
type TokenClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

// AnalyzeRequest asks the AI service to explain one solution
type AnalyzeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Language    string `json:"language"`
}

// SolutionAnalysis is the structured explanation the AI produces
type SolutionAnalysis struct {
	Intuition       string   `json:"intuition"`
	Steps           []string `json:"steps"`
	TimeComplexity  string   `json:"timeComplexity"`
	SpaceComplexity string   `json:"spaceComplexity"`
}
