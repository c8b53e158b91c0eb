package auth

import (
	"time"

	"github.com/google/uuid"
)

// Roles with access to the moderation surface
const (
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents a moderator or admin account
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
