package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the database.
type User struct {
	ID             uuid.UUID `db:"id"`
	Username       string    `db:"username"`
	Email          string    `db:"email"`
	Name           string    `db:"name"`
	Role           string    `db:"role"` // admin, user, viewer
	HashedPassword string    `db:"password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Roles stored on accounts. Registration assigns RoleUser.
const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleViewer = "viewer"
)
