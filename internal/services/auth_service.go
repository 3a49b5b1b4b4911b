// file: internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"dsavault/internal/config"
	"dsavault/internal/models"
	"dsavault/internal/repositories"
	"dsavault/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo repositories.UserRepository
	cfg      *config.AuthConfig
	logger   *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.AuthConfig, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

type jwtClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register creates an account and returns a signed token
func (s *authServiceImpl) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req == nil {
		return nil, NewValidationError("request is required", nil)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError(err.Error(), err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, NewInternalError("failed to hash password")
	}

	user := &models.User{
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		Name:                  strings.TrimSpace(req.Name),
		PasswordHash:          string(hash),
		EmailRemindersEnabled: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, NewConflictError("email already registered", "EMAIL_TAKEN")
		}
		return nil, NewStoreError("create user", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.Int64("user_id", user.ID))
	return &AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *authServiceImpl) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req == nil {
		return nil, NewValidationError("request is required", nil)
	}
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError("invalid email or password format", err)
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, NewStoreError("get user", err)
	}
	if user == nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewUnauthorizedError("invalid email or password")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))
	return &AuthResponse{Token: token, User: user}, nil
}

// ValidateToken parses and verifies a JWT, returning its claims
func (s *authServiceImpl) ValidateToken(_ context.Context, tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, NewUnauthorizedError("missing token")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || claims.UserID <= 0 {
		return nil, NewUnauthorizedError("invalid token claims")
	}

	return &TokenClaims{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *authServiceImpl) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", NewInternalError("failed to sign token")
	}
	return signed, nil
}
