package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User is an account allowed to edit the gallery
type User struct {
	ID           uuid.UUID    `db:"id"`
	Email        string       `db:"email"`
	Username     string       `db:"username"`
	PasswordHash string       `db:"password_hash"`
	IsAdmin      bool         `db:"is_admin"`
	IsActive     bool         `db:"is_active"`
	CreatedAt    time.Time    `db:"created_at"`
	LastLoginAt  sql.NullTime `db:"last_login_at"`
}
