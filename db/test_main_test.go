// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

var testDBPath string

func TestMain(m *testing.M) {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "hepaguard-db-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create temp dir:", err)
		os.Exit(1)
	}

	testDBPath = filepath.Join(dir, "nested", "app.db")

	if err := Init(ctx, testDBPath); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init database:", err)
		os.Exit(1)
	}

	if err := SyncSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "failed to sync schema:", err)
		os.Exit(1)
	}

	code := m.Run()

	Close()

	if err := os.RemoveAll(dir); err != nil {
		fmt.Fprintln(os.Stderr, "failed to remove temp dir:", err)
	}

	os.Exit(code)
}

func resetDatabase(t *testing.T) {
	t.Helper()

	if conn == nil {
		t.Fatalf("database connection not initialized")
	}

	if _, err := conn.ExecContext(testContext(), "DELETE FROM patients"); err != nil {
		t.Fatalf("failed to truncate patients: %v", err)
	}
}
