package models

import (
	"database/sql"
	"time"

	"github.com/Swayamo/quizverse/internal/domain"
)

// User is the users table row. PasswordHash and GoogleID are both nullable:
// password accounts have no google_id, OAuth-only accounts have no hash.
type User struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	Email        string         `db:"email"`
	PasswordHash sql.NullString `db:"password_hash"`
	GoogleID     sql.NullString `db:"google_id"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// ToDomain converts the row to a domain user.
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash.String,
		GoogleID:     u.GoogleID.String,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserFromDomain converts a domain user to its row form.
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: toNullString(u.PasswordHash),
		GoogleID:     toNullString(u.GoogleID),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
