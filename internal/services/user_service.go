// file: internal/services/user_service.go
package services

import (
	"context"
	"time"

	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"go.uber.org/zap"
)

// userServiceImpl implements UserService
type userServiceImpl struct {
	userRepo     repositories.UserRepository
	emailService EmailService
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, emailService EmailService, logger *zap.Logger) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// GetProfile returns the authenticated user's account
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, NewValidationError("user id is required", nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewStoreError("get user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}
	return user, nil
}

// SetReminderPreference toggles reminder emails for the user
func (s *userServiceImpl) SetReminderPreference(ctx context.Context, userID int64, enabled bool) error {
	if userID <= 0 {
		return NewValidationError("user id is required", nil)
	}

	if err := s.userRepo.SetReminderPreference(ctx, userID, enabled); err != nil {
		return NewStoreError("update reminder preference", err)
	}

	s.logger.Info("Reminder preference updated",
		zap.Int64("user_id", userID),
		zap.Bool("enabled", enabled),
	)
	return nil
}

// SendRevisionReminders mails every opted-in user whose last solve predates
// the cutoff. Called periodically by the reminder worker.
func (s *userServiceImpl) SendRevisionReminders(ctx context.Context, inactiveFor time.Duration) (int, error) {
	cutoff := time.Now().Add(-inactiveFor)

	recipients, err := s.userRepo.GetReminderRecipients(ctx, cutoff)
	if err != nil {
		return 0, NewStoreError("list reminder recipients", err)
	}

	sent := 0
	for _, user := range recipients {
		if err := s.emailService.SendRevisionReminder(ctx, user); err != nil {
			s.logger.Warn("Failed to send revision reminder",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("Revision reminders sent", zap.Int("count", sent))
	}
	return sent, nil
}
