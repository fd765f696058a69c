// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tomtom215/gridiron/internal/models"
)

// CredentialStore looks callers up by token digest. It returns (nil, nil)
// when nothing matches.
type CredentialStore interface {
	FindByToken(ctx context.Context, tokenHash string) (*models.User, error)
}

// ResolverOptions configures the anonymous bypass.
type ResolverOptions struct {
	// TrustedOrigin is matched against the Origin header and, by host,
	// against the Host header.
	TrustedOrigin string

	// DevMode admits every keyless request to a non-premium path.
	DevMode bool

	// PremiumPaths never admit keyless requests. Values are minimum tiers
	// and are only consumed by the entitlement gate.
	PremiumPaths map[string]int
}

// Resolver is the identity middleware.
type Resolver struct {
	store         CredentialStore
	hasher        *TokenHasher
	trustedOrigin string
	trustedHost   string
	devMode       bool
	premium       map[string]int
}

// NewResolver builds a Resolver over store.
func NewResolver(store CredentialStore, hasher *TokenHasher, opts ResolverOptions) *Resolver {
	r := &Resolver{
		store:         store,
		hasher:        hasher,
		trustedOrigin: opts.TrustedOrigin,
		devMode:       opts.DevMode,
		premium:       opts.PremiumPaths,
	}
	if u, err := url.Parse(opts.TrustedOrigin); err == nil && u.Host != "" {
		r.trustedHost = u.Host
	}
	return r
}

// Resolve identifies the caller of req.
func (r *Resolver) Resolve(req *http.Request) (*Caller, error) {
	header := req.Header.Get("Authorization")

	if header == "" && !r.isPremium(req.URL.Path) && (r.devMode || r.isTrustedOrigin(req)) {
		return AnonymousCaller(), nil
	}

	token, ok := ParseBearer(header)
	if !ok {
		return nil, ErrMissingCredential()
	}

	user, err := r.store.FindByToken(req.Context(), r.hasher.Hash(token))
	if err != nil {
		return nil, fmt.Errorf("look up credential: %w", err)
	}
	if user == nil {
		return nil, ErrUnknownToken()
	}
	if user.Blacklisted {
		return nil, ErrBlacklisted()
	}
	return NewCaller(user), nil
}

// Authenticate resolves the caller and stores it in the request context.
// Failures end the request.
func (r *Resolver) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		caller, err := r.Resolve(req)
		if err != nil {
			RespondError(w, req, err)
			return
		}
		next(w, req.WithContext(WithCaller(req.Context(), caller)))
	}
}

func (r *Resolver) isPremium(path string) bool {
	_, ok := r.premium[path]
	return ok
}

func (r *Resolver) isTrustedOrigin(req *http.Request) bool {
	if r.trustedOrigin == "" {
		return false
	}
	if req.Header.Get("Origin") == r.trustedOrigin {
		return true
	}
	return req.Host == r.trustedOrigin || (r.trustedHost != "" && req.Host == r.trustedHost)
}
