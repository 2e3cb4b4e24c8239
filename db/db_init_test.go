// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitRequiresPath(t *testing.T) {
	if err := Init(testContext(), ""); !errors.Is(err, ErrDatabasePathNotSet) {
		t.Fatalf("expected ErrDatabasePathNotSet, got %v", err)
	}

	if GetDB() == nil {
		t.Fatalf("failed Init must keep the existing connection")
	}
}

func TestInitCreatesParentDirectory(t *testing.T) {
	if _, err := os.Stat(filepath.Dir(testDBPath)); err != nil {
		t.Fatalf("expected database directory to exist: %v", err)
	}
}

func TestOpenAndMigrateSeparateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")

	sqlDB, err := Open(testContext(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	}()

	if err := Migrate(testContext(), sqlDB); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}

	// Running twice is a no-op.
	if err := Migrate(testContext(), sqlDB); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	var name string
	if err := sqlDB.QueryRowContext(testContext(),
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'patients'").Scan(&name); err != nil {
		t.Fatalf("patients table missing: %v", err)
	}

	var fk int
	if err := sqlDB.QueryRowContext(testContext(), "PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}

	if fk != 1 {
		t.Fatalf("expected foreign keys enabled, got %d", fk)
	}
}

func TestDSN(t *testing.T) {
	t.Parallel()

	dsn := DSN("db/app.db")
	if !strings.HasPrefix(dsn, "file:db/app.db?") {
		t.Fatalf("unexpected dsn %q", dsn)
	}

	for _, want := range []string{"foreign_keys", "journal_mode", "busy_timeout"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn %q missing %s", dsn, want)
		}
	}
}

func TestSyncSchemaIdempotent(t *testing.T) {
	if err := SyncSchema(testContext()); err != nil {
		t.Fatalf("SyncSchema failed: %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	entries, err := GetEmbeddedMigrations().ReadDir(MigrationsDir)
	if err != nil {
		t.Fatalf("failed to read embedded migrations: %v", err)
	}

	if len(entries) == 0 {
		t.Fatalf("expected at least one migration")
	}
}
