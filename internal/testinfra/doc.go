// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package testinfra starts throwaway service containers for integration
// tests with testcontainers-go.
//
// # PostgreSQL
//
// PostgresContainer backs the multi-instance quota ledger tests:
//
//	func TestLedger(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg.Container)
//
//	    db, err := database.New(ctx, &config.DatabaseConfig{Driver: "pgx", DSN: pg.DSN, ...})
//	    // ...
//	}
//
// # Redis
//
// RedisContainer backs the shared response cache tests. Unit tests use
// miniredis instead; the container checks behaviour against a real server.
//
// All helpers live behind the integration build tag and skip when Docker
// is unavailable. The first run pulls images.
package testinfra
