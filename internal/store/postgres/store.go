package postgres

import (
	db_models "agrotech-backend/internal/models"
	"agrotech-backend/internal/store"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Compile-time check to ensure PostgresStore implements store.Store
var _ store.Store = (*PostgresStore)(nil)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// emailConstraintPrefix matches users_email_key and users_email_lower_idx.
const emailConstraintPrefix = "users_email"

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, username, email, name, role, password, created_at, updated_at`

func scanUser(row pgx.Row) (*db_models.User, error) {
	user := &db_models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// GetUserByID retrieves a user by primary key.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*db_models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByID: Failed to query/scan user %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching user by id: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by username, ignoring case.
// Returns store.ErrNotFound if the user does not exist.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*db_models.User, error) {
	log.Printf("[PostgresStore] GetUserByUsername called for: %s", username)
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`

	user, err := scanUser(s.db.QueryRow(ctx, query, strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("[PostgresStore] GetUserByUsername: User not found for username %s", username)
			return nil, store.ErrNotFound
		}
		log.Printf("ERROR [PostgresStore] GetUserByUsername: Failed to query/scan user %s: %v", username, err)
		return nil, fmt.Errorf("database error fetching user by username: %w", err)
	}
	return user, nil
}

// CreateUser inserts a new user record and fills the database-generated fields back into user.
func (s *PostgresStore) CreateUser(ctx context.Context, user *db_models.User) error {
	log.Printf("[PostgresStore] CreateUser called for: %s", user.Username)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO users (id, username, email, name, role, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`
	// created_at and updated_at have database defaults (NOW())

	err := s.db.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.Name,
		user.Role,
		user.HashedPassword,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == uniqueViolation {
				if strings.HasPrefix(pgErr.ConstraintName, emailConstraintPrefix) {
					return store.ErrEmailConflict
				}
				return store.ErrConflict
			}
			log.Printf("ERROR [PostgresStore] CreateUser: PostgreSQL error executing insert for %s: Code=%s, Message=%s, Detail=%s", user.Username, pgErr.Code, pgErr.Message, pgErr.Detail)
		} else {
			log.Printf("ERROR [PostgresStore] CreateUser: Failed to execute insert for %s: %v", user.Username, err)
		}
		return fmt.Errorf("database error creating user: %w", err)
	}

	log.Printf("[PostgresStore] CreateUser: Successfully inserted user ID %s for username %s", user.ID, user.Username)
	return nil
}

// Ping checks connectivity with the pool.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
