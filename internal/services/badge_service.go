// file: internal/services/badge_service.go
package services

import (
	"context"
	"errors"
	"time"

	"dsavault/internal/badges"
	"dsavault/internal/events"
	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"go.uber.org/zap"
)

// badgeServiceImpl implements BadgeService
type badgeServiceImpl struct {
	catalog     *badges.Catalog
	badgeRepo   repositories.BadgeRepository
	problemRepo repositories.ProblemRepository
	bus         *events.Bus
	logger      *zap.Logger
	now         func() time.Time
}

// NewBadgeService creates a new badge service. The catalog must already be
// validated; the service never mutates it. bus may be nil when notifications
// are not wanted.
func NewBadgeService(
	catalog *badges.Catalog,
	badgeRepo repositories.BadgeRepository,
	problemRepo repositories.ProblemRepository,
	bus *events.Bus,
	logger *zap.Logger,
) BadgeService {
	return &badgeServiceImpl{
		catalog:     catalog,
		badgeRepo:   badgeRepo,
		problemRepo: problemRepo,
		bus:         bus,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckAndAward evaluates the whole catalog against the owner's current
// problem history and persists every newly satisfied badge. Awards are
// exactly-once: the (owner_id, badge_id) unique index decides races, and a
// duplicate-key conflict means another check already awarded the badge, so it
// is skipped without error and without appearing in the returned delta.
func (s *badgeServiceImpl) CheckAndAward(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}

	problems, err := s.problemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("load problem history", err)
	}

	earned, err := s.badgeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("load earned badges", err)
	}
	earnedSet := make(map[string]bool, len(earned))
	for _, b := range earned {
		earnedSet[b.BadgeID] = true
	}

	now := s.now()
	newBadges := make([]*models.EarnedBadge, 0)

	for _, def := range s.catalog.Definitions() {
		if earnedSet[def.ID] {
			continue
		}

		eval := badges.Evaluate(def.Requirement, problems, now)
		if !eval.Satisfied {
			continue
		}

		badge := &models.EarnedBadge{
			OwnerID:     ownerID,
			BadgeID:     def.ID,
			Name:        def.Name,
			Category:    string(def.Category),
			Tier:        string(def.Tier),
			Description: def.Description,
			Icon:        def.Icon,
			Color:       def.Color,
			Metadata: models.JSONMap{
				"metric": eval.Metric,
				"target": def.Requirement.Target,
			},
		}

		if err := s.badgeRepo.Insert(ctx, badge); err != nil {
			if errors.Is(err, repositories.ErrDuplicateBadge) {
				// Lost a race with a concurrent check. The badge is
				// earned either way; it just isn't part of this
				// call's delta.
				s.logger.Debug("Badge already awarded concurrently",
					zap.Int64("owner_id", ownerID),
					zap.String("badge_id", def.ID),
				)
				continue
			}
			return nil, NewStoreError("persist earned badge", err)
		}

		newBadges = append(newBadges, badge)
		if s.bus != nil {
			s.bus.Publish(ctx, events.NewBadgeAwardedEvent(
				ownerID, badge.BadgeID, badge.Name, badge.Tier, badge.Category,
			))
		}
	}

	if len(newBadges) > 0 {
		s.logger.Info("Badges awarded",
			zap.Int64("owner_id", ownerID),
			zap.Int("count", len(newBadges)),
		)
	}
	return newBadges, nil
}

// ListWithProgress projects the full catalog for one owner: earned entries
// unlocked at progress 100, the rest locked with progress computed from the
// live problem history. The projection is rebuilt on every call and never
// cached, since an hour boundary or a new submission can change it at any
// moment.
func (s *badgeServiceImpl) ListWithProgress(ctx context.Context, ownerID int64) ([]*models.ProgressView, error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}

	problems, err := s.problemRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("load problem history", err)
	}

	earned, err := s.badgeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("load earned badges", err)
	}
	earnedAt := make(map[string]time.Time, len(earned))
	for _, b := range earned {
		earnedAt[b.BadgeID] = b.EarnedAt
	}

	now := s.now()
	views := make([]*models.ProgressView, 0, s.catalog.Len())

	for _, def := range s.catalog.Definitions() {
		view := &models.ProgressView{
			BadgeID:     def.ID,
			Name:        def.Name,
			Category:    string(def.Category),
			Tier:        string(def.Tier),
			Description: def.Description,
			Icon:        def.Icon,
			Color:       def.Color,
		}

		if when, ok := earnedAt[def.ID]; ok {
			view.Progress = 100
			view.Locked = false
			t := when
			view.EarnedAt = &t
		} else {
			eval := badges.Evaluate(def.Requirement, problems, now)
			view.Progress = eval.Progress
			view.Locked = true
		}

		views = append(views, view)
	}
	return views, nil
}

// GetEarned returns the owner's earned badges, newest first
func (s *badgeServiceImpl) GetEarned(ctx context.Context, ownerID int64) ([]*models.EarnedBadge, error) {
	if ownerID <= 0 {
		return nil, NewValidationError("owner id is required", nil)
	}

	earned, err := s.badgeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewStoreError("load earned badges", err)
	}
	if earned == nil {
		earned = []*models.EarnedBadge{}
	}
	return earned, nil
}

// GetStats summarizes earned badges by category and tier
func (s *badgeServiceImpl) GetStats(ctx context.Context, ownerID int64) (*models.BadgeStats, error) {
	earned, err := s.GetEarned(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &models.BadgeStats{
		Total:      len(earned),
		ByCategory: make(map[string]int),
		ByTier:     make(map[string]int),
	}
	for _, b := range earned {
		stats.ByCategory[b.Category]++
		stats.ByTier[b.Tier]++
	}

	recent := earned
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.Recent = recent
	return stats, nil
}
