// internal/repositories/badge_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"

	"dsavault/internal/database"
	"dsavault/internal/models"

	"go.uber.org/zap"
)

// ErrDuplicateBadge is returned by Insert when the (owner_id, badge_id)
// unique index rejects the row. Under concurrent award checks this is the
// expected outcome for the loser, not a failure.
var ErrDuplicateBadge = errors.New("badge already earned")

// badgeRepository implements BadgeRepository over PostgreSQL
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new instance of BadgeRepository
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Insert persists a newly earned badge. The unique index is the only
// concurrency control for awards; callers must treat ErrDuplicateBadge as
// "already earned".
func (r *badgeRepository) Insert(ctx context.Context, badge *models.EarnedBadge) error {
	query := `
		INSERT INTO earned_badges (
			owner_id, badge_id, name, category, tier,
			description, icon, color, metadata
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, earned_at`

	err := r.QueryRowContext(
		ctx, query,
		badge.OwnerID, badge.BadgeID, badge.Name, badge.Category, badge.Tier,
		badge.Description, badge.Icon, badge.Color, badge.Metadata,
	).Scan(&badge.ID, &badge.EarnedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBadge
		}
		return fmt.Errorf("failed to insert earned badge: %w", err)
	}

	r.GetLogger().Info("Badge awarded",
		zap.Int64("owner_id", badge.OwnerID),
		zap.String("badge_id", badge.BadgeID),
		zap.String("tier", badge.Tier),
	)
	return nil
}

// FindByOwner returns all badges earned by a user, newest first
func (r *badgeRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error) {
	query := `
		SELECT id, owner_id, badge_id, name, category, tier,
		       description, icon, color, metadata, earned_at
		FROM earned_badges
		WHERE owner_id = $1
		ORDER BY earned_at DESC, id DESC`

	rows, err := r.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load earned badges: %w", err)
	}
	defer rows.Close()

	var badgesList []*models.EarnedBadge
	for rows.Next() {
		var b models.EarnedBadge
		if err := rows.Scan(
			&b.ID, &b.OwnerID, &b.BadgeID, &b.Name, &b.Category, &b.Tier,
			&b.Description, &b.Icon, &b.Color, &b.Metadata, &b.EarnedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan earned badge: %w", err)
		}
		badgesList = append(badgesList, &b)
	}
	return badgesList, rows.Err()
}
