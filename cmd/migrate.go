/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/hepaguard/config"
	"github.com/humaidq/hepaguard/db"
)

var dbPathFlag = &cli.StringFlag{
	Name:    "db-path",
	Sources: cli.EnvVars(config.EnvDBPath),
	Usage:   "SQLite database file (default db/app.db)",
}

var CmdMigrate = &cli.Command{
	Name:  "migrate",
	Usage: "Database migration commands",
	Flags: []cli.Flag{dbPathFlag},
	Commands: []*cli.Command{
		{
			Name:   "up",
			Usage:  "Run all pending migrations",
			Action: migrateUp,
		},
		{
			Name:   "down",
			Usage:  "Roll back the last migration",
			Action: migrateDown,
		},
		{
			Name:   "status",
			Usage:  "Show migration status",
			Action: migrateStatus,
		},
		{
			Name:   "create",
			Usage:  "Create a new migration file <name>",
			Action: migrateCreate,
		},
		{
			Name:   "version",
			Usage:  "Print the current version of the database",
			Action: migrateVersion,
		},
	},
}

func resolveDBPath(cmd *cli.Command) string {
	if p := cmd.String("db-path"); p != "" {
		return p
	}

	return config.Load().DBPath
}

func getDB(ctx context.Context, cmd *cli.Command) (*sql.DB, error) {
	sqlDB, err := db.Open(ctx, resolveDBPath(cmd))
	if err != nil {
		return nil, err
	}

	if err := db.PrepareGoose(); err != nil {
		closeDB(sqlDB)
		return nil, err
	}

	return sqlDB, nil
}

func closeDB(sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		appLogger.Warn("Failed to close database", "error", err)
	}
}

func migrateUp(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := getDB(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeDB(sqlDB)

	if err := goose.UpContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fmt.Println("Migrations completed successfully")

	return nil
}

func migrateDown(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := getDB(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeDB(sqlDB)

	if err := goose.DownContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	fmt.Println("Migration rolled back successfully")

	return nil
}

func migrateStatus(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := getDB(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeDB(sqlDB)

	if err := goose.StatusContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	return nil
}

func migrateVersion(ctx context.Context, cmd *cli.Command) error {
	sqlDB, err := getDB(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeDB(sqlDB)

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to get database version: %w", err)
	}

	fmt.Printf("Database version: %d\n", version)

	return nil
}

func migrateCreate(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args()
	if args.Len() < 1 {
		return errMigrationNameRequired
	}

	name := args.First()

	// Written to the source tree, not the embedded filesystem.
	migrationsDir := "db/migrations"
	if err := os.MkdirAll(migrationsDir, 0o750); err != nil {
		return fmt.Errorf("failed to create migrations directory: %w", err)
	}

	goose.SetBaseFS(nil)

	if err := goose.Create(nil, migrationsDir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	fmt.Printf("Created new migration in %s/\n", migrationsDir)

	return nil
}
