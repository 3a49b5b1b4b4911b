// internal/repositories/user_repository.go
package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dsavault/internal/database"
	"dsavault/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ErrDuplicateEmail is returned when registration hits the unique email index
var ErrDuplicateEmail = errors.New("email already registered")

// userRepository implements UserRepository over PostgreSQL
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a new user
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, password_hash, email_reminders_enabled)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at, updated_at`

	err := r.QueryRowContext(
		ctx, query,
		user.Email, user.Name, user.PasswordHash, user.EmailRemindersEnabled,
	).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return nil
}

// GetByID retrieves a user by id; returns (nil, nil) when absent
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active,
		       email_reminders_enabled, created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active = true`

	return r.scanUser(r.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email; returns (nil, nil) when absent
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active,
		       email_reminders_enabled, created_at, updated_at
		FROM users
		WHERE email = LOWER($1) AND is_active = true`

	return r.scanUser(r.QueryRowContext(ctx, query, email))
}

// Count returns the number of active users
func (r *userRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// SetReminderPreference toggles reminder emails for a user
func (r *userRepository) SetReminderPreference(ctx context.Context, userID int64, enabled bool) error {
	query := `
		UPDATE users
		SET email_reminders_enabled = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.ExecContext(ctx, query, userID, enabled)
	if err != nil {
		return fmt.Errorf("failed to update reminder preference: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// GetReminderRecipients returns users with reminders enabled whose most
// recent problem predates the cutoff (or who have no problems at all).
func (r *userRepository) GetReminderRecipients(ctx context.Context, inactiveSince time.Time) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active,
		       u.email_reminders_enabled, u.created_at, u.updated_at
		FROM users u
		LEFT JOIN (
			SELECT owner_id, MAX(created_at) AS last_solved
			FROM problems
			GROUP BY owner_id
		) p ON p.owner_id = u.id
		WHERE u.is_active = true
		  AND u.email_reminders_enabled = true
		  AND (p.last_solved IS NULL OR p.last_solved < $1)
		ORDER BY u.id`

	rows, err := r.QueryContext(ctx, query, inactiveSince)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder recipients: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive,
			&u.EmailRemindersEnabled, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder recipient: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *userRepository) scanUser(row interface {
	Scan(dest ...interface{}) error
}) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive,
		&u.EmailRemindersEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
