package postgres

import (
	db_models "agrotech-backend/internal/models"
	"agrotech-backend/internal/store"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestStore connects to TEST_DATABASE_URL and applies the schema.
// Returns nil when no test database is configured.
func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return NewPostgresStore(pool)
}

func TestPostgresCreateAndGetUser(t *testing.T) {
	s := setupTestStore(t)
	if s == nil {
		t.Skip("Skipping test that requires real database connection")
	}
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	user := &db_models.User{
		Username:       "produtor_" + suffix,
		Email:          "produtor_" + suffix + "@fazenda.com",
		Name:           "Produtor",
		Role:           db_models.RoleUser,
		HashedPassword: "hash",
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == uuid.Nil || user.CreatedAt.IsZero() {
		t.Fatalf("Expected ID and CreatedAt to be set, got %+v", user)
	}

	byName, err := s.GetUserByUsername(ctx, "PRODUTOR_"+suffix)
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("Expected ID %s, got %s", user.ID, byName.ID)
	}

	dup := *user
	dup.ID = uuid.Nil
	dup.Email = "other_" + suffix + "@fazenda.com"
	if err := s.CreateUser(ctx, &dup); !errors.Is(err, store.ErrConflict) {
		t.Errorf("Expected ErrConflict for duplicate username, got %v", err)
	}

	sameEmail := *user
	sameEmail.ID = uuid.Nil
	sameEmail.Username = "outro_" + suffix
	sameEmail.Email = strings.ToUpper(user.Email)
	if err := s.CreateUser(ctx, &sameEmail); !errors.Is(err, store.ErrEmailConflict) {
		t.Errorf("Expected ErrEmailConflict for duplicate email, got %v", err)
	}

	if _, err := s.GetUserByID(ctx, uuid.New()); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
