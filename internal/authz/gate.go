// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package authz is the entitlement gate. It runs after identity
// resolution and decides whether a resolved caller's subscription tier
// admits the requested path.
//
// Tiers are Casbin roles. Role tier:N holds every lower tier role, and
// each premium route grants access to the role of its minimum tier, so
// a caller at tier 3 passes a route that requires tier 1.
package authz

import (
	_ "embed"
	"fmt"
	"net/http"
	"strconv"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/logging"
)

//go:embed model.conf
var embeddedModel string

// Gate enforces subscription tiers.
type Gate struct {
	enforcer *casbin.SyncedEnforcer
	premium  map[string]int
	maxTier  int
}

// NewGate builds the tier policy for premium, a map of path to minimum
// tier. Tiers above maxTier are treated as maxTier.
func NewGate(premium map[string]int, maxTier int) (*Gate, error) {
	if maxTier < 1 {
		return nil, fmt.Errorf("max tier must be at least 1, got %d", maxTier)
	}

	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	// Each tier holds every lower tier directly, keeping role depth at one.
	for hi := 2; hi <= maxTier; hi++ {
		for lo := 1; lo < hi; lo++ {
			if _, err := enforcer.AddGroupingPolicy(role(hi), role(lo)); err != nil {
				return nil, fmt.Errorf("failed to add tier hierarchy: %w", err)
			}
		}
	}

	owned := make(map[string]int, len(premium))
	for path, minTier := range premium {
		if minTier < 1 || minTier > maxTier {
			return nil, fmt.Errorf("premium route %s: tier %d outside 1..%d", path, minTier, maxTier)
		}
		if _, err := enforcer.AddPolicy(role(minTier), path, "*"); err != nil {
			return nil, fmt.Errorf("failed to add policy for %s: %w", path, err)
		}
		owned[path] = minTier
	}

	g := &Gate{enforcer: enforcer, premium: owned, maxTier: maxTier}
	g.logPolicy()
	return g, nil
}

func role(tier int) string {
	return "tier:" + strconv.Itoa(tier)
}

// Check decides whether caller may call method on path. Anonymous callers
// pass: the resolver only admits them to non-premium paths.
func (g *Gate) Check(caller *auth.Caller, path, method string) error {
	if caller == nil {
		return auth.ErrMissingCredential()
	}
	if !caller.HasIdentity() {
		return nil
	}
	if caller.Tier <= 0 {
		return auth.ErrNoSubscription()
	}

	minTier, premium := g.premium[path]
	if !premium {
		return nil
	}

	tier := caller.Tier
	if tier > g.maxTier {
		tier = g.maxTier
	}
	allowed, err := g.enforcer.Enforce(role(tier), path, method)
	if err != nil {
		return fmt.Errorf("enforcement failed: %w", err)
	}
	if !allowed {
		return auth.ErrInsufficientTier(minTier)
	}
	return nil
}

// Entitle is middleware applying Check to the caller in the request
// context.
func (g *Gate) Entitle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := g.Check(auth.CallerFromContext(r.Context()), r.URL.Path, r.Method); err != nil {
			auth.RespondError(w, r, err)
			return
		}
		next(w, r)
	}
}

// MinTier returns the minimum tier for path and whether path is premium.
func (g *Gate) MinTier(path string) (int, bool) {
	t, ok := g.premium[path]
	return t, ok
}

// logPolicy writes the effective policy at debug level.
func (g *Gate) logPolicy() {
	policy, err := g.enforcer.GetPolicy()
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to read entitlement policy")
		return
	}
	logging.Debug().Int("max_tier", g.maxTier).Int("rules", len(policy)).Msg("Entitlement policy loaded")
}
