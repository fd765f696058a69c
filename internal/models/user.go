// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package models holds the plain data shapes shared between storage, the
// admission chain and the HTTP handlers.
package models

// User is a credential store record. TokenHash is the keyed digest of the
// API key; the plaintext key is never stored.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	TokenHash      string `json:"-"`
	PatreonTier    int    `json:"patronLevel"`
	RemainingCalls int    `json:"remainingCalls"`
	Blacklisted    bool   `json:"blacklisted"`
	Throttled      bool   `json:"throttled"`
	IsAdmin        bool   `json:"isAdmin"`
}

// Info is the body of GET /info.
type Info struct {
	PatronLevel    int `json:"patronLevel"`
	RemainingCalls int `json:"remainingCalls"`
}
