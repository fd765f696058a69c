// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package cache stores rendered JSON responses for slow-changing
// resources (teams, ratings, recruiting).
//
// Two backends implement Store:
//
//   - MemoryStore: a per-process map with TTL expiry and a background
//     sweep. The default.
//   - RedisStore: go-redis against a shared server, so every API
//     instance serves the same cached bytes.
//
// Handler wraps an http.HandlerFunc with read-through caching keyed by
// path and normalized query. Only 200 responses are stored. Caching sits
// inside the admission chain, so cached responses are still charged to
// the caller's quota.
package cache
