// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

//go:build integration

package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/gridiron/internal/config"
	"github.com/tomtom215/gridiron/internal/models"
	"github.com/tomtom215/gridiron/internal/testinfra"
)

func setupPostgresDB(t *testing.T) *DB {
	t.Helper()
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	pg, err := testinfra.NewPostgresContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL: %v", err)
	}
	t.Cleanup(func() { testinfra.CleanupContainer(t, context.Background(), pg.Container) })

	db, err := New(ctx, &config.DatabaseConfig{
		Driver:       "pgx",
		DSN:          pg.DSN,
		MaxOpenConns: 16,
		MaxIdleConns: 16,
		Migrate:      true,
	})
	if err != nil {
		t.Fatalf("New(pgx) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPostgres_LedgerConcurrentDecrements(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	if err := db.CreateUser(ctx, &models.User{ID: 1, Username: "u", TokenHash: "h", PatreonTier: 1, RemainingCalls: 500}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	// Two "instances" sharing one database.
	const perInstance = 100
	var wg sync.WaitGroup
	for i := 0; i < 2*perInstance; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.DecrementAndGetRemaining(ctx, 1); err != nil {
				t.Errorf("DecrementAndGetRemaining() error = %v", err)
			}
		}()
	}
	wg.Wait()

	u, err := db.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.RemainingCalls != 500-2*perInstance {
		t.Errorf("remaining = %d, want %d", u.RemainingCalls, 500-2*perInstance)
	}
}

func TestPostgres_SeedAndQuery(t *testing.T) {
	db := setupPostgresDB(t)
	ctx := context.Background()

	if err := db.SeedDevData(ctx, "dev-digest"); err != nil {
		t.Fatalf("SeedDevData() error = %v", err)
	}
	games, err := db.ListGames(ctx, GameFilter{Year: 2025, Team: "Alabama"})
	if err != nil {
		t.Fatalf("ListGames() error = %v", err)
	}
	if len(games) != 2 {
		t.Errorf("len = %d, want 2", len(games))
	}
	board, err := db.Scoreboard(ctx, "")
	if err != nil {
		t.Fatalf("Scoreboard() error = %v", err)
	}
	if len(board) != 2 {
		t.Errorf("scoreboard len = %d, want 2", len(board))
	}
}
