package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Swayamo/quizverse/internal/domain"
	"github.com/Swayamo/quizverse/internal/repository/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const pgUniqueViolation = "23505"

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new user repository backed by sqlx.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user. A unique violation on the email column is
// translated to a duplicate-email domain error.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	row := models.UserFromDomain(user)
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt

	query := `INSERT INTO users (id, username, email, password_hash, google_id, created_at, updated_at)
	          VALUES (:id, :username, :email, :password_hash, :google_id, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.NewError(domain.CodeDuplicateEmail, "An account with this email already exists", err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.CreatedAt = row.CreatedAt
	user.UpdatedAt = row.UpdatedAt
	return nil
}

// GetUserByEmail retrieves a user by email. Returns nil, nil when not found.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row models.User
	query := `SELECT id, username, email, password_hash, google_id, created_at, updated_at
	          FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return row.ToDomain(), nil
}

// GetUserByID retrieves a user by internal ID. Returns nil, nil when not found.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var row models.User
	query := `SELECT id, username, email, password_hash, google_id, created_at, updated_at
	          FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return row.ToDomain(), nil
}

// GetUserByGoogleID retrieves a user by Google ID. Returns nil, nil when not
// found so the OAuth callback can decide between login and signup.
func (r *sqlxUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	var row models.User
	query := `SELECT id, username, email, password_hash, google_id, created_at, updated_at
	          FROM users WHERE google_id = $1`

	if err := r.db.GetContext(ctx, &row, query, googleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by google_id: %w", err)
	}
	return row.ToDomain(), nil
}

// UpdateUser updates an existing user's mutable fields.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	row := models.UserFromDomain(user)
	row.UpdatedAt = time.Now()

	query := `UPDATE users SET
	            username = :username,
	            email = :email,
	            password_hash = :password_hash,
	            google_id = :google_id,
	            updated_at = :updated_at
	          WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError(fmt.Sprintf("user not found: %s", user.ID))
	}

	user.UpdatedAt = row.UpdatedAt
	return nil
}
