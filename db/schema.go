/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrationsDir is the directory inside the embedded filesystem.
const MigrationsDir = "migrations"

//go:embed migrations/*.sql
var embedMigrations embed.FS

// GetEmbeddedMigrations returns the embedded migrations filesystem for use by CLI commands
func GetEmbeddedMigrations() embed.FS {
	return embedMigrations
}

// PrepareGoose points goose at the embedded migrations and the SQLite
// dialect.
func PrepareGoose() error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	return nil
}

// Migrate applies all pending migrations to sqlDB.
func Migrate(ctx context.Context, sqlDB *sql.DB) error {
	if err := PrepareGoose(); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, sqlDB, MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// SyncSchema runs database migrations using goose
func SyncSchema(ctx context.Context) error {
	if conn == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	return Migrate(ctx, conn)
}
