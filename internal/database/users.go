// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/gridiron/internal/models"
)

// ErrUserNotFound is returned by ledger operations on an unknown id.
var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, token_hash, patreon_tier, remaining_calls, blacklisted, throttled, is_admin`

// FindByToken looks a caller up by token digest. It returns (nil, nil)
// when no record matches.
func (db *DB) FindByToken(ctx context.Context, tokenHash string) (_ *models.User, err error) {
	defer observe("find_user_by_token", time.Now(), &err)

	var u models.User
	err = db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM api_user WHERE token_hash = $1`, tokenHash,
	).Scan(&u.ID, &u.Username, &u.TokenHash, &u.PatreonTier, &u.RemainingCalls, &u.Blacklisted, &u.Throttled, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // absence is not an error for credential lookup
	}
	if err != nil {
		return nil, fmt.Errorf("find user by token: %w", err)
	}
	return &u, nil
}

// DecrementAndGetRemaining atomically subtracts one call from the caller's
// balance and returns the new value. It is a single UPDATE ... RETURNING so
// concurrent requests, including ones served by other instances sharing a
// PostgreSQL database, never lose an update.
func (db *DB) DecrementAndGetRemaining(ctx context.Context, id int64) (remaining int, err error) {
	defer observe("decrement_remaining_calls", time.Now(), &err)
	defer db.lockWrites()()

	err = db.conn.QueryRowContext(ctx,
		`UPDATE api_user SET remaining_calls = remaining_calls - 1 WHERE id = $1 RETURNING remaining_calls`, id,
	).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("decrement user %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("decrement user %d: %w", id, err)
	}
	return remaining, nil
}

// CreateUser inserts a credential record. u.TokenHash must already be the
// keyed digest.
func (db *DB) CreateUser(ctx context.Context, u *models.User) (err error) {
	defer observe("create_user", time.Now(), &err)

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO api_user (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.TokenHash, u.PatreonTier, u.RemainingCalls, u.Blacklisted, u.Throttled, u.IsAdmin)
	if err != nil {
		return fmt.Errorf("create user %d: %w", u.ID, err)
	}
	return nil
}

// SetRemainingCalls overwrites one caller's balance.
func (db *DB) SetRemainingCalls(ctx context.Context, id int64, calls int) (err error) {
	defer observe("set_remaining_calls", time.Now(), &err)
	defer db.lockWrites()()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE api_user SET remaining_calls = $1 WHERE id = $2`, calls, id)
	if err != nil {
		return fmt.Errorf("set remaining calls for user %d: %w", id, err)
	}
	if n, rerr := res.RowsAffected(); rerr == nil && n == 0 {
		return fmt.Errorf("set remaining calls for user %d: %w", id, ErrUserNotFound)
	}
	return nil
}

// GetUser fetches a record by id.
func (db *DB) GetUser(ctx context.Context, id int64) (_ *models.User, err error) {
	defer observe("get_user", time.Now(), &err)

	var u models.User
	err = db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM api_user WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.TokenHash, &u.PatreonTier, &u.RemainingCalls, &u.Blacklisted, &u.Throttled, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// ResetMonthlyCalls sets every user's balance to the allotment for their
// tier. Tiers missing from allotments are left untouched.
func (db *DB) ResetMonthlyCalls(ctx context.Context, allotments map[int]int) (err error) {
	defer observe("reset_monthly_calls", time.Now(), &err)
	defer db.lockWrites()()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for tier, calls := range allotments {
		if _, err = tx.ExecContext(ctx,
			`UPDATE api_user SET remaining_calls = $1 WHERE patreon_tier = $2`, calls, tier); err != nil {
			return fmt.Errorf("reset tier %d: %w", tier, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
