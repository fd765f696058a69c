// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package middleware provides the transport-level HTTP middleware shared by
// every route: request ids, Prometheus instrumentation, and the two-phase
// response writer that lets admission code run after a handler has chosen
// its status but before anything reaches the wire.
//
// Middleware here uses the func(http.HandlerFunc) http.HandlerFunc shape;
// the api package adapts it to chi.
package middleware
