// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

/*
Package auth resolves who is calling.

The Resolver turns a request into a *Caller and stores it in the request
context. A request without an Authorization header is admitted as an
anonymous caller when it targets a non-premium path and either comes
from the trusted first-party origin or the server runs in development
mode. Every other request must carry "Bearer <token>". The token is
hashed with a keyed BLAKE2b-256 digest and looked up in the credential
store; unknown and blacklisted tokens are rejected.

Subscription tier checks happen later, in package authz.

Failures are *AuthorizationError values. Middleware writes them as 401
with a {"message": ...} body and counts them in
gridiron_auth_failures_total by reason.

Usage:

	hasher, err := auth.NewTokenHasher(cfg.Security.TokenPepper)
	if err != nil {
	    return err
	}
	resolver := auth.NewResolver(db, hasher, auth.ResolverOptions{
	    TrustedOrigin: cfg.Security.TrustedOrigin,
	    DevMode:       cfg.Server.DevMode,
	    PremiumPaths:  cfg.Security.PremiumTiers(),
	})
	r.Use(chiMiddleware(resolver.Authenticate))

Handlers read the caller back with auth.CallerFromContext.
*/
package auth
