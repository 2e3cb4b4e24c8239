/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package db stores saved patient assessments in a local SQLite file.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	// Register the pure Go SQLite driver with database/sql.
	_ "modernc.org/sqlite"

	"github.com/humaidq/hepaguard/logging"
)

const driverName = "sqlite"

var (
	conn   *sql.DB
	logger = logging.Logger(logging.SourceDB)
)

// DSN returns the driver connection string for a database file. Every
// pooled connection gets foreign keys, WAL and a busy timeout.
func DSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")

	return "file:" + path + "?" + q.Encode()
}

// Open opens and pings the SQLite file at path, creating its parent
// directory first.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, ErrDatabasePathNotSet
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open(driverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		if cerr := sqlDB.Close(); cerr != nil {
			logger.Warn("Failed to close database after ping failure", "error", cerr)
		}

		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqlDB, nil
}

// Init opens the package-level connection to the database file at path.
func Init(ctx context.Context, path string) error {
	sqlDB, err := Open(ctx, path)
	if err != nil {
		return err
	}

	Close()

	conn = sqlDB

	logger.Debug("Database opened", "path", path)

	return nil
}

// GetDB returns the package-level connection.
func GetDB() *sql.DB {
	return conn
}

// Close closes the package-level connection.
func Close() {
	if conn == nil {
		return
	}

	if err := conn.Close(); err != nil {
		logger.Warn("Failed to close database", "error", err)
	}

	conn = nil
}
