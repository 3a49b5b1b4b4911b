// file: internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"dsavault/internal/config"
	"dsavault/internal/models"
	"dsavault/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User
	nextID  int64
	getErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[int64]*models.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repositories.ErrDuplicateEmail
	}
	f.nextID++
	user.ID = f.nextID
	user.IsActive = true
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Count(context.Context) (int, error) {
	return len(f.byID), nil
}

func (f *fakeUserRepo) SetReminderPreference(_ context.Context, userID int64, enabled bool) error {
	if u, ok := f.byID[userID]; ok {
		u.EmailRemindersEnabled = enabled
	}
	return nil
}

func (f *fakeUserRepo) GetReminderRecipients(context.Context, time.Time) ([]*models.User, error) {
	return nil, nil
}

func newTestAuthService(repo repositories.UserRepository) AuthService {
	cfg := &config.AuthConfig{
		JWTSecret:  "test-secret-at-least-32-characters!!",
		JWTExpiry:  time.Hour,
		BCryptCost: 4,
	}
	return NewAuthService(repo, cfg, zap.NewNop())
}

func TestRegister_And_Login(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	reg, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Ada@Example.com",
		Name:     "Ada Lovelace",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "ada@example.com", reg.User.Email)
	assert.NotEqual(t, "correct horse", reg.User.PasswordHash)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)

	claims, err := svc.ValidateToken(context.Background(), login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	req := &RegisterRequest{Email: "dup@example.com", Name: "First User", Password: "password1"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "user@example.com", Name: "Some User", Password: "password1",
	})
	require.NoError(t, err)

	_, wrongPass := svc.Login(context.Background(), &LoginRequest{
		Email: "user@example.com", Password: "wrong",
	})
	_, unknown := svc.Login(context.Background(), &LoginRequest{
		Email: "nobody@example.com", Password: "password1",
	})

	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}

func TestRegister_ValidationFailure(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email: "not-an-email", Name: "X", Password: "short",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
