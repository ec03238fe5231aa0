package repository

import (
	"context"
	"fmt"
	"time"

	"storage-marketplace/internal/data/entity"
	"storage-marketplace/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	// Create runs on the caller's handle so the address resolution and
	// the user insert commit or roll back together.
	Create(ctx context.Context, q database.Queryer, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateDetails(ctx context.Context, q database.Queryer, user *entity.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateVerificationStatus(ctx context.Context, id uuid.UUID, verified bool) error
	UpdateProfilePicture(ctx context.Context, id uuid.UUID, pictureURL string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, password, role, address_id, is_verified,
	       profile_picture_url, rating_avg, rating_count, last_login_at,
	       created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, q database.Queryer, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password, role, address_id,
		                   is_verified, profile_picture_url, rating_avg,
		                   rating_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := q.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.AddressID,
		user.IsVerified,
		user.ProfilePictureURL,
		user.RatingAvg,
		user.RatingCount,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		r.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		r.log.Error("Failed to find user by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find user by username %s: %w", username, err)
	}

	return user, nil
}

// scanUser maps a single row; a missing row comes back as (nil, nil).
func (r *userRepository) scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.AddressID,
		&user.IsVerified,
		&user.ProfilePictureURL,
		&user.RatingAvg,
		&user.RatingCount,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) UpdateDetails(ctx context.Context, q database.Queryer, user *entity.User) error {
	query := `
		UPDATE users
		SET username = $2, email = $3, address_id = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.AddressID,
		user.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update user details",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.ID.String())
	}

	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update password",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update password for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (r *userRepository) UpdateVerificationStatus(ctx context.Context, id uuid.UUID, verified bool) error {
	query := `UPDATE users SET is_verified = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, verified)
	if err != nil {
		r.log.Error("Failed to update verification status",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update verification for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (r *userRepository) UpdateProfilePicture(ctx context.Context, id uuid.UUID, pictureURL string) error {
	query := `UPDATE users SET profile_picture_url = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, pictureURL)
	if err != nil {
		r.log.Error("Failed to update profile picture",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update profile picture for user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id.String())
	}

	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2 WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, at)
	if err != nil {
		r.log.Error("Failed to update last login",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update last login for user %s: %w", id.String(), err)
	}

	return nil
}
