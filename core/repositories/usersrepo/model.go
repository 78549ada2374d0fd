package usersrepo

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Users are created at registration and never
// updated or deleted by this service.
type User struct {
	UserID       uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// CreateUser contains the fields for creating a new user.
type CreateUser struct {
	UserID       uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
}
