// internal/repositories/problem_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"dsavault/internal/database"
	"dsavault/internal/models"

	"go.uber.org/zap"
)

// problemRepository implements ProblemRepository over PostgreSQL
type problemRepository struct {
	*BaseRepository
}

// NewProblemRepository creates a new instance of ProblemRepository
func NewProblemRepository(db *database.Manager, logger *zap.Logger) ProblemRepository {
	return &problemRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const problemColumns = `
	id, owner_id, title, description, code,
	difficulty, language, topic, tags,
	intuition, steps, time_complexity, space_complexity,
	created_at, updated_at`

// Create inserts a new problem record
func (r *problemRepository) Create(ctx context.Context, problem *models.Problem) error {
	query := `
		INSERT INTO problems (
			owner_id, title, description, code,
			difficulty, language, topic, tags,
			intuition, steps, time_complexity, space_complexity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		problem.OwnerID, problem.Title, problem.Description, problem.Code,
		problem.Difficulty, problem.Language, problem.Topic, problem.Tags,
		problem.Intuition, problem.Steps, problem.TimeComplexity, problem.SpaceComplexity,
	).Scan(&problem.ID, &problem.CreatedAt, &problem.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create problem: %w", err)
	}

	r.GetLogger().Info("Problem created",
		zap.Int64("problem_id", problem.ID),
		zap.Int64("owner_id", problem.OwnerID),
		zap.String("difficulty", problem.Difficulty),
		zap.String("topic", problem.Topic),
	)
	return nil
}

// GetByID retrieves one problem scoped to its owner; returns (nil, nil) when
// absent or owned by someone else.
func (r *problemRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Problem, error) {
	query := fmt.Sprintf(`SELECT %s FROM problems WHERE id = $1 AND owner_id = $2`, problemColumns)

	var p models.Problem
	err := r.QueryRowContext(ctx, query, id, ownerID).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Code,
		&p.Difficulty, &p.Language, &p.Topic, &p.Tags,
		&p.Intuition, &p.Steps, &p.TimeComplexity, &p.SpaceComplexity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	p.CreatedAtHuman = r.formatTimeHuman(p.CreatedAt)
	return &p, nil
}

// Delete removes a problem scoped to its owner
func (r *problemRepository) Delete(ctx context.Context, id, ownerID int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM problems WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("problem %d not found", id)
	}
	return nil
}

// List returns a page of the owner's problems
func (r *problemRepository) List(ctx context.Context, ownerID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Problem], error) {
	validSorts := map[string]bool{
		"created_at": true, "updated_at": true,
		"title": true, "difficulty": true, "topic": true,
	}

	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	var total int64
	if err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM problems WHERE owner_id = $1`, ownerID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count problems: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM problems WHERE owner_id = $1`, problemColumns) +
		r.BuildOrderClause(params.Sort, params.Order, validSorts) +
		` LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, ownerID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	defer rows.Close()

	problems, err := r.scanProblems(rows)
	if err != nil {
		return nil, err
	}

	return paginate(problems, total, params), nil
}

// FindByOwner returns the owner's full problem snapshot in creation order
func (r *problemRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*models.Problem, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM problems WHERE owner_id = $1 ORDER BY created_at ASC`,
		problemColumns,
	)

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load problem snapshot: %w", err)
	}
	defer rows.Close()

	return r.scanProblems(rows)
}

// UpdateAnalysis stores the AI-generated fields on an existing problem
func (r *problemRepository) UpdateAnalysis(ctx context.Context, problem *models.Problem) error {
	query := `
		UPDATE problems SET
			intuition = $2, steps = $3,
			time_complexity = $4, space_complexity = $5,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.ExecContext(ctx, query,
		problem.ID, problem.Intuition, problem.Steps,
		problem.TimeComplexity, problem.SpaceComplexity,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("problem %d not found", problem.ID)
	}
	return nil
}

// ===============================
// AGGREGATIONS
// ===============================

// TopicCounts returns the owner's problems grouped by topic, most practiced
// first.
func (r *problemRepository) TopicCounts(ctx context.Context, ownerID int64) ([]*models.TopicCount, error) {
	query := `
		SELECT topic, COUNT(*) AS count
		FROM problems
		WHERE owner_id = $1
		GROUP BY topic
		ORDER BY count DESC, topic ASC`

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate topics: %w", err)
	}
	defer rows.Close()

	var counts []*models.TopicCount
	for rows.Next() {
		var tc models.TopicCount
		if err := rows.Scan(&tc.Topic, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan topic count: %w", err)
		}
		counts = append(counts, &tc)
	}
	return counts, rows.Err()
}

// GlobalStats aggregates activity across all users for the leaderboard header
func (r *problemRepository) GlobalStats(ctx context.Context) (*GlobalProblemStats, error) {
	startOfDay := time.Now().Truncate(24 * time.Hour)
	query := `
		SELECT
			COUNT(*),
			COUNT(DISTINCT owner_id) FILTER (WHERE created_at >= $1),
			COALESCE(AVG(
				CASE difficulty
					WHEN 'Easy' THEN 1
					WHEN 'Medium' THEN 2
					ELSE 3
				END
			), 0)
		FROM problems`

	var stats GlobalProblemStats
	err := r.QueryRowContext(ctx, query, startOfDay).Scan(
		&stats.TotalSolved, &stats.ActiveToday, &stats.AvgDifficultyScore,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute global stats: %w", err)
	}
	return &stats, nil
}

// LeaderboardRows groups problems per owner with a difficulty-weighted score
func (r *problemRepository) LeaderboardRows(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT
			p.owner_id,
			u.name,
			COUNT(*) AS problems_solved,
			SUM(CASE p.difficulty
				WHEN 'Easy' THEN 1
				WHEN 'Medium' THEN 2
				ELSE 3
			END) AS difficulty_score,
			MAX(p.created_at) AS last_solved_at
		FROM problems p
		INNER JOIN users u ON u.id = p.owner_id AND u.is_active = true
		GROUP BY p.owner_id, u.name
		ORDER BY difficulty_score DESC, problems_solved DESC, last_solved_at DESC
		LIMIT $1`

	rows, err := r.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard rows: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		var lastSolved time.Time
		if err := rows.Scan(&e.UserID, &e.Name, &e.ProblemsSolved, &e.DifficultyScore, &lastSolved); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		e.LastSolvedAt = &lastSolved
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// ===============================
// SCAN HELPERS
// ===============================

func (r *problemRepository) scanProblems(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]*models.Problem, error) {
	var problems []*models.Problem
	for rows.Next() {
		var p models.Problem
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.Code,
			&p.Difficulty, &p.Language, &p.Topic, &p.Tags,
			&p.Intuition, &p.Steps, &p.TimeComplexity, &p.SpaceComplexity,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		p.CreatedAtHuman = r.formatTimeHuman(p.CreatedAt)
		problems = append(problems, &p)
	}
	return problems, rows.Err()
}

func paginate[T any](data []T, total int64, params models.PaginationParams) *models.PaginatedResponse[T] {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	currentPage := params.CalculateOffset()/params.Limit + 1

	return &models.PaginatedResponse[T]{
		Data: data,
		Pagination: models.PaginationMeta{
			CurrentPage:  currentPage,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: params.Limit,
			HasNext:      currentPage < totalPages,
			HasPrev:      currentPage > 1,
		},
	}
}
