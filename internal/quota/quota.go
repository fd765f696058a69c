// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package quota

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/metrics"
	"github.com/tomtom215/gridiron/internal/middleware"
)

const (
	// HeaderRemaining carries the caller's balance on every keyed response.
	HeaderRemaining = "X-CallLimit-Remaining"

	MsgQuotaExceeded = "Monthly call quota exceeded."

	defaultLedgerTimeout = 2 * time.Second
)

// Options configures a Quota.
type Options struct {
	// ExemptPaths are never charged and never rejected for balance.
	ExemptPaths []string

	// LedgerTimeout bounds one decrement. Defaults to 2s.
	LedgerTimeout time.Duration

	// FailureLog samples ledger failure logs. Defaults to the first 5,
	// then one every 10s.
	FailureLog *logging.Sampler
}

// Quota holds the enforcer and the ledger updater.
type Quota struct {
	ledger  Ledger
	exempt  map[string]struct{}
	timeout time.Duration
	sampler *logging.Sampler
}

// New returns a Quota charging ledger.
func New(ledger Ledger, opts Options) *Quota {
	q := &Quota{
		ledger:  ledger,
		exempt:  make(map[string]struct{}, len(opts.ExemptPaths)),
		timeout: opts.LedgerTimeout,
		sampler: opts.FailureLog,
	}
	for _, p := range opts.ExemptPaths {
		q.exempt[p] = struct{}{}
	}
	if q.timeout <= 0 {
		q.timeout = defaultLedgerTimeout
	}
	if q.sampler == nil {
		q.sampler = logging.NewSampler(5, 10*time.Second)
	}
	return q
}

// IsExempt reports whether path is quota exempt. Matching is exact and
// case-sensitive.
func (q *Quota) IsExempt(path string) bool {
	_, ok := q.exempt[path]
	return ok
}

// Enforce rejects keyed callers who are out of calls.
func (q *Quota) Enforce(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := auth.CallerFromContext(r.Context())
		if !caller.HasIdentity() || caller.IsAdmin || q.IsExempt(r.URL.Path) {
			next(w, r)
			return
		}
		if caller.RemainingCalls <= 0 {
			metrics.QuotaRejections.WithLabelValues(r.URL.Path).Inc()
			logging.Ctx(r.Context()).Debug().
				Int64("caller_id", caller.ID).
				Str("path", r.URL.Path).
				Msg("Monthly quota exhausted")
			middleware.WriteMessage(w, http.StatusTooManyRequests, MsgQuotaExceeded)
			return
		}
		next(w, r)
	}
}

// RecordUsage charges successful responses to the caller. The decrement
// runs after the handler picks its status and before anything is sent.
func (q *Quota) RecordUsage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := auth.CallerFromContext(r.Context())
		if !caller.HasIdentity() {
			next(w, r)
			return
		}

		ctx := r.Context()
		path := r.URL.Path
		iw := middleware.NewInterceptWriter(w)
		iw.OnCommit(func(status int, h http.Header) {
			if status >= 200 && status < 300 && !q.IsExempt(path) {
				q.charge(ctx, caller)
			} else {
				metrics.QuotaLedgerUpdates.WithLabelValues("skipped").Inc()
			}
			h.Set(HeaderRemaining, strconv.Itoa(caller.RemainingCalls))
		})

		next(iw, r)
		iw.Commit()
	}
}

// charge decrements the ledger and refreshes caller. Failures are logged
// and swallowed.
func (q *Quota) charge(ctx context.Context, caller *auth.Caller) {
	// Charge even when the client has disconnected.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
	defer cancel()

	remaining, err := q.ledger.DecrementAndGetRemaining(ctx, caller.ID)
	if err != nil {
		metrics.QuotaLedgerUpdates.WithLabelValues("error").Inc()
		q.sampler.Do(func() *zerolog.Event {
			return logging.Ctx(ctx).Error()
		}, func(e *zerolog.Event) {
			e.Err(err).Int64("caller_id", caller.ID).Msg("Quota ledger update failed")
		})
		return
	}

	metrics.QuotaLedgerUpdates.WithLabelValues("ok").Inc()
	caller.RemainingCalls = remaining
}
