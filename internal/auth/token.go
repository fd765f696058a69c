// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package auth

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const bearerPrefix = "Bearer "

// TokenHasher produces the digest under which a token is stored. The
// credential store never sees plaintext tokens.
type TokenHasher struct {
	key []byte
}

// NewTokenHasher keys BLAKE2b-256 with pepper. An empty pepper gives an
// unkeyed digest; a pepper longer than 64 bytes is rejected.
func NewTokenHasher(pepper string) (*TokenHasher, error) {
	if len(pepper) > blake2b.Size {
		return nil, fmt.Errorf("token pepper is %d bytes, at most %d allowed", len(pepper), blake2b.Size)
	}
	return &TokenHasher{key: []byte(pepper)}, nil
}

// Hash returns the hex digest of token.
func (h *TokenHasher) Hash(token string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// Key length is checked in NewTokenHasher.
		panic(err)
	}
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// ParseBearer extracts the token from an Authorization header value of the
// form "Bearer <token>".
func ParseBearer(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
