package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"dsavault/internal/database"

	"go.uber.org/zap"
)

// BaseRepository provides common database operations with query logging
type BaseRepository struct {
	db     *database.Manager
	logger *zap.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *database.Manager, logger *zap.Logger) *BaseRepository {
	return &BaseRepository{
		db:     db,
		logger: logger,
	}
}

// GetLogger returns the repository logger
func (r *BaseRepository) GetLogger() *zap.Logger {
	return r.logger
}

// ===============================
// CORE DATABASE OPERATIONS
// ===============================

// ExecContext executes a statement, logging slow queries and failures
func (r *BaseRepository) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logQuery(query, start, err)
	return result, err
}

// QueryContext executes a query that returns rows
func (r *BaseRepository) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.logQuery(query, start, err)
	return rows, err
}

// QueryRowContext executes a query that returns a single row
func (r *BaseRepository) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logQuery(query, start, nil)
	return row
}

func (r *BaseRepository) logQuery(query string, start time.Time, err error) {
	duration := time.Since(start)
	if duration > r.db.SlowQueryThreshold() {
		r.logger.Warn("Slow query detected",
			zap.String("query", r.truncateQuery(query)),
			zap.Duration("duration", duration),
		)
	}
	if err != nil {
		r.logger.Error("Query execution failed",
			zap.String("query", r.truncateQuery(query)),
			zap.Error(err),
		)
	}
}

// ===============================
// HELPERS
// ===============================

// IsNotFound reports whether the error is sql.ErrNoRows
func (r *BaseRepository) IsNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// BuildOrderClause validates sort/order against a whitelist and returns a
// safe ORDER BY fragment.
func (r *BaseRepository) BuildOrderClause(sort, order string, validSorts map[string]bool) string {
	if !validSorts[sort] {
		sort = "created_at"
	}
	if order != "asc" && order != "desc" {
		order = "desc"
	}
	return fmt.Sprintf(" ORDER BY %s %s", sort, strings.ToUpper(order))
}

func (r *BaseRepository) truncateQuery(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > 200 {
		return compact[:200] + "..."
	}
	return compact
}

// formatTimeHuman renders a rough relative timestamp for display fields
func (r *BaseRepository) formatTimeHuman(t time.Time) string {
	elapsed := time.Since(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
