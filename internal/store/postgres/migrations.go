package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the schema if it does not exist yet. Every statement is idempotent.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	// No arguments, so pgx sends the file over the simple protocol and multiple statements are allowed.
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("[PostgresStore] Schema migration applied.")
	return nil
}
