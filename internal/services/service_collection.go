// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"
	"time"

	"dsavault/internal/badges"
	"dsavault/internal/cache"
	"dsavault/internal/config"
	"dsavault/internal/database"
	"dsavault/internal/events"
	"dsavault/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection aggregates all services for dependency injection
type ServiceCollection struct {
	AuthService        AuthService
	UserService        UserService
	ProblemService     ProblemService
	BadgeService       BadgeService
	DashboardService   DashboardService
	LeaderboardService LeaderboardService
	ExportService      ExportService
	AIService          AIService
	EmailService       EmailService

	bus *events.Bus
}

// NewServiceCollection wires repositories and services together. The badge
// catalog is validated here so a broken definition stops the boot instead of
// surfacing per request.
func NewServiceCollection(
	ctx context.Context,
	cfg *config.Config,
	db *database.Manager,
	c cache.Cache,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	catalog, err := badges.NewCatalog(badges.DefaultDefinitions())
	if err != nil {
		return nil, fmt.Errorf("invalid badge catalog: %w", err)
	}

	userRepo := repositories.NewUserRepository(db, logger)
	problemRepo := repositories.NewProblemRepository(db, logger)
	badgeRepo := repositories.NewBadgeRepository(db, logger)

	bus := events.NewBus(256, logger)

	var aiService AIService
	if cfg.AI.Enabled {
		aiService, err = NewAIService(ctx, &cfg.AI, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AI service: %w", err)
		}
	}

	badgeService := NewBadgeService(catalog, badgeRepo, problemRepo, bus, logger)
	emailService := NewEmailService(&cfg.Email, logger)

	sc := &ServiceCollection{
		AuthService:        NewAuthService(userRepo, &cfg.Auth, logger),
		UserService:        NewUserService(userRepo, emailService, logger),
		ProblemService:     NewProblemService(problemRepo, badgeService, aiService, bus, logger),
		BadgeService:       badgeService,
		DashboardService:   NewDashboardService(problemRepo, logger),
		LeaderboardService: NewLeaderboardService(problemRepo, userRepo, c, cfg.Cache.TTL, logger),
		ExportService:      NewExportService(problemRepo, logger),
		AIService:          aiService,
		EmailService:       emailService,
		bus:                bus,
	}

	bus.Subscribe(events.TypeBadgeAwarded, badgeNotificationHandler(userRepo, badgeRepo, emailService))

	return sc, nil
}

// Close drains the event queue and stops background workers
func (sc *ServiceCollection) Close() {
	sc.bus.Close()
}

// RunReminderWorker periodically sends revision reminders until ctx is done
func (sc *ServiceCollection) RunReminderWorker(ctx context.Context, interval, inactiveFor time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sc.UserService.SendRevisionReminders(ctx, inactiveFor); err != nil {
				logger.Error("Reminder run failed", zap.Error(err))
			}
		}
	}
}

// badgeNotificationHandler mails the owner whenever a badge is awarded
func badgeNotificationHandler(
	userRepo repositories.UserRepository,
	badgeRepo repositories.BadgeRepository,
	emailService EmailService,
) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		awarded, ok := event.(*events.BadgeAwardedEvent)
		if !ok {
			return nil
		}

		user, err := userRepo.GetByID(ctx, awarded.GetUserID())
		if err != nil || user == nil {
			return err
		}

		earned, err := badgeRepo.FindByOwner(ctx, user.ID)
		if err != nil {
			return err
		}
		for _, b := range earned {
			if b.BadgeID == awarded.BadgeID {
				return emailService.SendBadgeEarned(ctx, user, b)
			}
		}
		return nil
	}
}
