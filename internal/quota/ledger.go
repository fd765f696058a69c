// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package quota

import (
	"context"
	"errors"
	"fmt"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/gridiron/internal/config"
	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/metrics"
)

// Ledger atomically decrements a caller's balance and returns the result.
type Ledger interface {
	DecrementAndGetRemaining(ctx context.Context, id int64) (int, error)
}

// ErrLedgerUnavailable is returned while the breaker is open.
var ErrLedgerUnavailable = errors.New("quota ledger unavailable")

const breakerName = "quota-ledger"

// BreakerLedger guards a Ledger with a circuit breaker.
type BreakerLedger struct {
	ledger Ledger
	cb     *gobreaker.CircuitBreaker[int]
}

// NewBreakerLedger wraps ledger. The breaker opens after
// cfg.FailureThreshold consecutive failures and probes again after
// cfg.Timeout.
func NewBreakerLedger(ledger Ledger, cfg config.BreakerConfig) *BreakerLedger {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
			metrics.RecordBreakerTransition(name, from.String(), to.String())
		},
	})

	return &BreakerLedger{ledger: ledger, cb: cb}
}

// DecrementAndGetRemaining runs the wrapped decrement through the breaker.
func (b *BreakerLedger) DecrementAndGetRemaining(ctx context.Context, id int64) (int, error) {
	remaining, err := b.cb.Execute(func() (int, error) {
		return b.ledger.DecrementAndGetRemaining(ctx, id)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, fmt.Errorf("%w: %w", ErrLedgerUnavailable, err)
	}
	return remaining, err
}

// State reports the breaker state.
func (b *BreakerLedger) State() gobreaker.State {
	return b.cb.State()
}
