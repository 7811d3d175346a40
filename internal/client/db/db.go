// Package db opens the local SQLite database used for durable session
// state and applies schema migrations.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dinebridge/dinebridge/internal/client/db/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies all embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the local database at dsn and migrates it
// to the current schema. The caller owns the returned handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening local database: %w", err)
	}

	if err := RunMigrations(ctx, handle); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("migrating local database: %w", err)
	}

	return handle, nil
}
