// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package services adapts Gridiron components to suture.Service.
//
// HTTPServerService turns http.Server's blocking ListenAndServe into a
// context-aware Serve with graceful Shutdown. Components that already
// expose Serve(ctx) error, such as cache.MemoryStore, are added to the
// tree directly.
package services
