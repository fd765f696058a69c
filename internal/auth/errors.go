// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/metrics"
	"github.com/tomtom215/gridiron/internal/middleware"
)

// Reason classifies an authorization failure for metrics and logs.
type Reason string

const (
	ReasonMissingCredential Reason = "missing_credential"
	ReasonUnknownToken      Reason = "unknown_token"
	ReasonBlacklisted       Reason = "blacklisted"
	ReasonNoSubscription    Reason = "no_subscription"
	ReasonInsufficientTier  Reason = "insufficient_tier"
)

// Caller-facing messages. API consumers match on this text.
const (
	MsgMissingCredential = `Unauthorized. Did you make sure to use "Bearer " before your API key?`
	MsgUnknownToken      = "Unauthorized. The API key provided is not valid."
	MsgBlacklisted       = "Account has been blacklisted."
	MsgNoSubscription    = "This version of the CFBD API is in limited beta and requires a Patreon subscription. " +
		"Please see https://www.patreon.com/collegefootballdata for details."
	msgInsufficientTierFormat = "This endpoint requires a Patreon subscription at Tier %d or higher."
)

// AuthorizationError is a request rejected for lack of a valid identity or
// entitlement. It is always answered with 401 and never retried.
type AuthorizationError struct {
	Reason  Reason
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func newAuthorizationError(reason Reason, msg string) *AuthorizationError {
	return &AuthorizationError{Reason: reason, Message: msg}
}

// ErrMissingCredential is returned when the header is absent or malformed.
func ErrMissingCredential() *AuthorizationError {
	return newAuthorizationError(ReasonMissingCredential, MsgMissingCredential)
}

// ErrUnknownToken is returned when no credential record matches.
func ErrUnknownToken() *AuthorizationError {
	return newAuthorizationError(ReasonUnknownToken, MsgUnknownToken)
}

// ErrBlacklisted is returned for a blacklisted record.
func ErrBlacklisted() *AuthorizationError {
	return newAuthorizationError(ReasonBlacklisted, MsgBlacklisted)
}

// ErrNoSubscription is returned for a caller without any tier.
func ErrNoSubscription() *AuthorizationError {
	return newAuthorizationError(ReasonNoSubscription, MsgNoSubscription)
}

// ErrInsufficientTier is returned when a premium path needs a higher tier.
func ErrInsufficientTier(minTier int) *AuthorizationError {
	return newAuthorizationError(ReasonInsufficientTier, fmt.Sprintf(msgInsufficientTierFormat, minTier))
}

// RespondError writes err to w. Authorization errors become 401 with
// their message; anything else is logged and answered with 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *AuthorizationError
	if errors.As(err, &authErr) {
		metrics.AuthFailures.WithLabelValues(string(authErr.Reason)).Inc()
		logging.Ctx(r.Context()).Debug().
			Str("reason", string(authErr.Reason)).
			Str("path", r.URL.Path).
			Msg("Request rejected")
		middleware.WriteMessage(w, http.StatusUnauthorized, authErr.Message)
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Identity resolution failed")
	middleware.WriteMessage(w, http.StatusInternalServerError, "Internal server error.")
}
