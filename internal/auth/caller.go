// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package auth

import (
	"context"

	"github.com/tomtom215/gridiron/internal/models"
)

type contextKey string

const callerContextKey contextKey = "caller"

// Caller is the identity admitted for one request. RemainingCalls is
// refreshed by the quota ledger after a successful decrement; nothing
// else changes once the Resolver has built it.
type Caller struct {
	ID             int64
	Username       string
	Tier           int
	RemainingCalls int
	Blacklisted    bool
	Throttled      bool
	IsAdmin        bool

	// Anonymous marks a trusted first-party request without a key.
	Anonymous bool
}

// AnonymousCaller returns the identity used for keyless first-party calls.
func AnonymousCaller() *Caller {
	return &Caller{Anonymous: true}
}

// NewCaller builds a caller from a credential record.
func NewCaller(u *models.User) *Caller {
	return &Caller{
		ID:             u.ID,
		Username:       u.Username,
		Tier:           u.PatreonTier,
		RemainingCalls: u.RemainingCalls,
		Blacklisted:    u.Blacklisted,
		Throttled:      u.Throttled,
		IsAdmin:        u.IsAdmin,
	}
}

// HasIdentity reports whether c is a resolved, keyed caller.
func (c *Caller) HasIdentity() bool {
	return c != nil && !c.Anonymous
}

// WithCaller attaches c to ctx.
func WithCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, c)
}

// CallerFromContext returns the caller stored by the Resolver, or nil.
func CallerFromContext(ctx context.Context) *Caller {
	c, _ := ctx.Value(callerContextKey).(*Caller)
	return c
}
