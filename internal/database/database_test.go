// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/gridiron/internal/config"
)

// testDBSemaphore serializes DuckDB instances across parallel tests.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(context.Background(), &config.DatabaseConfig{
		Driver:       "duckdb",
		DSN:          ":memory:",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
		Migrate:      true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

// setupSeededDB returns a database loaded with the development fixtures.
func setupSeededDB(t *testing.T) *DB {
	t.Helper()
	db := setupTestDB(t)
	if err := db.SeedDevData(context.Background(), "dev-digest"); err != nil {
		t.Fatalf("SeedDevData() error = %v", err)
	}
	return db
}

func TestNew_FileDatabaseCreatesParentDir(t *testing.T) {
	testDBSemaphore <- struct{}{}
	defer func() { <-testDBSemaphore }()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := New(context.Background(), &config.DatabaseConfig{
		Driver:       "duckdb",
		DSN:          filepath.Join(dir, "gridiron.duckdb"),
		MaxOpenConns: 1,
		Migrate:      true,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
	if db.Driver() != "duckdb" {
		t.Errorf("Driver() = %q, want duckdb", db.Driver())
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(context.Background(), &config.DatabaseConfig{Driver: "oracle", DSN: "x", MaxOpenConns: 1})
	if err == nil {
		t.Fatal("New() with unknown driver should fail")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := db.createSchema(context.Background()); err != nil {
		t.Fatalf("second createSchema() error = %v", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestEnsureParentDir(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{"empty", ""},
		{"memory", ":memory:"},
		{"bare file", "gridiron.duckdb"},
		{"with options", ":memory:?threads=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ensureParentDir(tt.dsn); err != nil {
				t.Errorf("ensureParentDir(%q) error = %v", tt.dsn, err)
			}
		})
	}
}

func TestWhere(t *testing.T) {
	var w where
	if got := w.String(); got != "" {
		t.Errorf("empty where = %q, want empty", got)
	}

	w.add("season = ?", 2025)
	w.addIf(false, "week = ?", 3)
	w.addIf(true, "(home = ? OR away = ?)", "Georgia")

	want := " WHERE season = $1 AND (home = $2 OR away = $2)"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if len(w.args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(w.args))
	}
}
