// file: internal/services/email_service.go
package services

import (
	"context"

	"dsavault/internal/config"
	"dsavault/internal/models"

	"go.uber.org/zap"
)

// emailServiceImpl implements EmailService. Delivery is log-only until an
// SMTP provider is configured; every notification is recorded either way.
type emailServiceImpl struct {
	cfg    *config.EmailConfig
	logger *zap.Logger
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig, logger *zap.Logger) EmailService {
	return &emailServiceImpl{cfg: cfg, logger: logger}
}

// SendBadgeEarned notifies a user about a newly earned badge
func (s *emailServiceImpl) SendBadgeEarned(_ context.Context, user *models.User, badge *models.EarnedBadge) error {
	if !s.cfg.Enabled {
		return nil
	}

	s.logger.Info("Badge notification queued",
		zap.String("to", user.Email),
		zap.String("from", s.cfg.FromAddress),
		zap.String("badge", badge.FullDisplay()),
	)
	return nil
}

// SendRevisionReminder nudges an inactive user to keep practicing
func (s *emailServiceImpl) SendRevisionReminder(_ context.Context, user *models.User) error {
	if !s.cfg.Enabled || !user.EmailRemindersEnabled {
		return nil
	}

	s.logger.Info("Revision reminder queued",
		zap.String("to", user.Email),
		zap.String("from", s.cfg.FromAddress),
	)
	return nil
}
