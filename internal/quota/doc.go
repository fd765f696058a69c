// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package quota enforces and bills the monthly call allowance.
//
// Enforce runs before the handler and answers 429 when a keyed,
// non-admin caller has no calls left on a non-exempt path. RecordUsage
// wraps the response: once the handler has chosen a 2xx status on a
// non-exempt path, it decrements the caller's balance in the ledger and
// advertises the new value in X-CallLimit-Remaining before the status
// line goes out.
//
// Ledger writes fail open. A failed or short-circuited decrement is
// logged (sampled) and the response proceeds unchanged. BreakerLedger
// puts a circuit breaker in front of the store so an outage costs one
// fast rejection per request instead of a timeout.
package quota
