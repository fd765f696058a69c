// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Command server runs the Gridiron API.
//
// Startup order:
//
//  1. Configuration: defaults, config.yaml, then environment (koanf)
//  2. Logging: zerolog, with a slog bridge for the supervisor
//  3. Database: DuckDB or PostgreSQL, schema migration, optional dev seed
//  4. Admission chain: identity resolver, entitlement gate, slowdown
//     governor, quota enforcer and ledger
//  5. Response cache: in-memory or Redis
//  6. Supervisor tree running the HTTP server and cache sweeper
//
// SIGINT and SIGTERM cancel the tree. In-flight requests, including ones
// held by the slowdown governor, get server.shutdown_timeout to finish.
//
// Local development:
//
//	export DEV_MODE=true DB_SEED_DEV_DATA=true DEV_API_KEY=dev-key LOG_FORMAT=console
//	go run ./cmd/server
//	curl -H "Authorization: Bearer dev-key" "localhost:8080/games?year=2025"
package main
