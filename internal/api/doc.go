// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

/*
Package api is Gridiron's HTTP surface: the chi router, the order in which
the admission middleware runs, and the read-only football resource
handlers.

# Middleware order

Every request passes through request id, real IP, panic recovery,
Prometheus instrumentation and CORS. Resource routes then run the
admission chain:

	[per-IP limit] -> identity -> entitlement -> slowdown -> quota -> handler -> ledger

The chain is mounted on a route group so that only registered resource
routes reach it. Health and metrics endpoints sit outside the chain and
are never charged.

# Responses

Resource handlers answer with JSON arrays. Failures use the same
{"message": "..."} body as the admission layer: 400 for invalid query
parameters, 500 for storage errors.
*/
package api
