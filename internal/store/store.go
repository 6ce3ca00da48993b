package store

import (
	db_models "agrotech-backend/internal/models"
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a specific record is not found.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a unique constraint (e.g. username) would be violated.
var ErrConflict = errors.New("record already exists")

// ErrEmailConflict is returned when another account already uses the email, ignoring case.
var ErrEmailConflict = errors.New("email already registered")

// Store defines the interface for account persistence.
// This allows for mocking in tests and switching between the in-memory and Postgres backends.
type Store interface {
	// User operations
	GetUserByID(ctx context.Context, id uuid.UUID) (*db_models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*db_models.User, error)
	CreateUser(ctx context.Context, user *db_models.User) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
