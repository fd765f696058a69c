// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package database is Gridiron's SQL layer. It owns the credential store,
// the atomic quota ledger and the read-only football queries.
//
// Two drivers are supported through database/sql: DuckDB (embedded, the
// default for a single instance) and PostgreSQL via pgx (for deployments
// where several API instances share one quota ledger). All SQL uses $N
// placeholders, which both engines accept.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tomtom215/gridiron/internal/config"
	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/metrics"
)

// DB wraps a *sql.DB for either supported driver.
type DB struct {
	conn   *sql.DB
	driver string

	// writeMu serializes ledger writes on DuckDB, whose optimistic
	// concurrency control rejects concurrent updates of the same row.
	writeMu sync.Mutex
}

// New opens the configured database, tunes the pool, verifies the
// connection and, when enabled, creates the schema.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.Driver == "duckdb" {
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	db := &DB{conn: conn, driver: cfg.Driver}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}

	if cfg.Migrate {
		if err := db.createSchema(ctx); err != nil {
			closeQuietly(conn)
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Bool("migrate", cfg.Migrate).
		Msg("Database ready")
	return db, nil
}

// ensureParentDir creates the directory holding a DuckDB file. In-memory
// DSNs are left alone.
func ensureParentDir(dsn string) error {
	path := strings.SplitN(dsn, "?", 2)[0]
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}

// Close releases the pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping is used by the readiness probe.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Conn exposes the pool for tests and tooling.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns "duckdb" or "pgx".
func (db *DB) Driver() string {
	return db.driver
}

// lockWrites takes writeMu when the engine needs it and returns the
// matching unlock.
func (db *DB) lockWrites() func() {
	if db.driver != "duckdb" {
		return func() {}
	}
	db.writeMu.Lock()
	return db.writeMu.Unlock
}

// observe records query latency. Call it deferred with a pointer to the
// function's named error result.
func observe(operation string, start time.Time, err *error) {
	metrics.RecordDBQuery(operation, time.Since(start), *err)
}

// queryAndScan runs query and hands each row to scan.
func (db *DB) queryAndScan(ctx context.Context, query string, args []interface{}, scan func(*sql.Rows) error) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection")
	}
}
