// file: internal/models/models.go
package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents an account in the practice tracker
type User struct {
	// Primary fields
	ID    int64  `json:"id" db:"id"`
	Email string `json:"email" db:"email" validate:"required,email,max=320"`
	Name  string `json:"name" db:"name" validate:"required,min=2,max=100"`

	// Authentication
	PasswordHash string `json:"-" db:"password_hash"`
	IsActive     bool   `json:"is_active" db:"is_active"`

	// Preferences
	EmailRemindersEnabled bool `json:"email_reminders_enabled" db:"email_reminders_enabled"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed/joined fields (not in DB)
	TotalSolved int `json:"total_solved,omitempty" db:"-"`
	Streak      int `json:"streak,omitempty" db:"-"`
	BadgeCount  int `json:"badge_count,omitempty" db:"-"`
}

// Problem represents one solved practice problem owned by a user
type Problem struct {
	// Primary fields
	ID      int64 `json:"id" db:"id"`
	OwnerID int64 `json:"owner_id" db:"owner_id"`

	// Submission content
	Title       string `json:"title" db:"title" validate:"required,max=255"`
	Description string `json:"description" db:"description" validate:"required"`
	Code        string `json:"code" db:"code" validate:"required"`

	// Classification
	Difficulty string      `json:"difficulty" db:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Language   string      `json:"language" db:"language" validate:"required,oneof=Java Python JavaScript C++ Go"`
	Topic      string      `json:"topic" db:"topic" validate:"required,max=100"`
	Tags       StringArray `json:"tags,omitempty" db:"tags"`

	// AI generated analysis (nullable until the analysis completes)
	Intuition       *string     `json:"intuition,omitempty" db:"intuition"`
	Steps           StringArray `json:"steps,omitempty" db:"steps"`
	TimeComplexity  *string     `json:"time_complexity,omitempty" db:"time_complexity"`
	SpaceComplexity *string     `json:"space_complexity,omitempty" db:"space_complexity"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Helper fields (not in DB)
	CreatedAtHuman string `json:"created_at_human,omitempty" db:"-"`
}

// EarnedBadge represents a badge awarded to a user. At most one row exists
// per (owner_id, badge_id); the unique index in the badges migration is the
// sole concurrency-control mechanism for awards.
type EarnedBadge struct {
	ID       int64  `json:"id" db:"id"`
	OwnerID  int64  `json:"owner_id" db:"owner_id"`
	BadgeID  string `json:"badge_id" db:"badge_id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
	Tier     string `json:"tier" db:"tier"`

	// Display metadata copied from the catalog at award time
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Color       string `json:"color" db:"color"`

	// Observed metric at award time (count, streak length, ...)
	Metadata JSONMap `json:"metadata,omitempty" db:"metadata"`

	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

// ProgressView is the catalog-with-progress projection returned by the badge
// listing. It is derived fresh on every request and never persisted.
type ProgressView struct {
	BadgeID     string `json:"badge_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Tier        string `json:"tier"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`

	Progress int  `json:"progress"` // 0..100, always 100 when unlocked
	Locked   bool `json:"locked"`

	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// ===============================
// AGGREGATES & VIEWS
// ===============================

// BadgeStats summarizes a user's earned badges
type BadgeStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	ByTier     map[string]int `json:"by_tier"`
	Recent     []*EarnedBadge `json:"recent"`
}

// DashboardSummary is the per-user dashboard headline view
type DashboardSummary struct {
	TotalProblems int    `json:"total_problems"`
	ThisWeek      int    `json:"this_week"`
	Easy          int    `json:"easy"`
	Medium        int    `json:"medium"`
	Hard          int    `json:"hard"`
	Streak        int    `json:"streak"`
	TopTopic      string `json:"top_topic,omitempty"`
}

// TopicCount is one row of the most-practiced-topics breakdown
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// LeaderboardEntry is one ranked row of the global leaderboard
type LeaderboardEntry struct {
	Rank            int        `json:"rank"`
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	ProblemsSolved  int        `json:"problems_solved"`
	DifficultyScore int        `json:"difficulty_score"`
	LastSolvedAt    *time.Time `json:"last_solved_at,omitempty"`
}

// LeaderboardView combines global stats with the ranked list
type LeaderboardView struct {
	TotalUsers    int                 `json:"total_users"`
	TotalSolved   int                 `json:"total_solved"`
	ActiveToday   int                 `json:"active_today"`
	AvgDifficulty string              `json:"avg_difficulty"`
	Entries       []*LeaderboardEntry `json:"leaderboard"`
}

// ===============================
// PAGINATION
// ===============================

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Offset int    `json:"offset" validate:"min=0"`
	Sort   string `json:"sort,omitempty" validate:"omitempty,oneof=created_at updated_at title difficulty topic"`
	Order  string `json:"order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
	Filters    map[string]any `json:"filters,omitempty"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
	HasNext      bool  `json:"has_next"`
	HasPrev      bool  `json:"has_prev"`
}

// ===============================
// CUSTOM TYPES
// ===============================

// StringArray handles PostgreSQL text[] columns
type StringArray []string

// Scan implements sql.Scanner
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return s.parsePgArray(string(v))
	case string:
		return s.parsePgArray(v)
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
}

// Value implements driver.Valuer
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	quoted := make([]string, len(s))
	for i, elem := range s {
		quoted[i] = `"` + strings.ReplaceAll(strings.ReplaceAll(elem, `\`, `\\`), `"`, `\"`) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}", nil
}

func (s *StringArray) parsePgArray(raw string) error {
	raw = strings.Trim(raw, "{}")
	if raw == "" {
		*s = StringArray{}
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make(StringArray, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, `"`)
		p = strings.ReplaceAll(p, `\"`, `"`)
		p = strings.ReplaceAll(p, `\\`, `\`)
		out = append(out, p)
	}
	*s = out
	return nil
}

// ===============================
// HELPER METHODS
// ===============================

// CalculateOffset returns the effective offset for the pagination params
func (p *PaginationParams) CalculateOffset() int {
	if p.Offset > 0 {
		return p.Offset
	}
	return 0
}

// FullDisplay returns the badge name with its icon prefix for logs and emails
func (b *EarnedBadge) FullDisplay() string {
	if b.Icon == "" {
		return b.Name
	}
	return b.Icon + " " + b.Name
}
