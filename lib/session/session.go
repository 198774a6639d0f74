// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned by Store.Read when nothing was saved, or
// the last save was cleared.
var ErrNoSession = errors.New("session: no session stored")

// Session is the stored token/email pair. The JSON field names are the
// on-disk layout of the session file.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Store persists at most one Session.
type Store interface {
	// Save overwrites any stored session with token and email. Neither
	// value is checked: an empty email or a malformed token is stored
	// as given.
	Save(token, email string) error

	// Read returns exactly the pair last saved, without checking
	// expiry. When nothing is stored the error wraps ErrNoSession.
	Read() (*Session, error)

	// Clear removes the stored session. Clearing an empty store
	// succeeds.
	Clear() error

	// IsValid reports whether a session is stored and its token
	// carries an exp claim in the future. It never returns an error:
	// absent or malformed tokens are simply invalid.
	IsValid() bool
}

// segments decodes base64url token segments. Claims are never
// validated here; ValidAt applies its own exp comparison against an
// injected time.
var segments = jwt.NewParser()

// ExpiresAt decodes the exp claim of token without verifying it. The
// token must be three dot-separated segments whose middle one
// base64url-decodes to JSON carrying a numeric exp. The header and
// signature segments are not inspected.
func ExpiresAt(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("session: token has %d segments, want 3", len(parts))
	}
	payload, err := segments.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("session: decoding token payload: %w", err)
	}
	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("session: parsing token payload: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("session: token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// ValidAt reports whether token's exp claim is strictly after now.
// Malformed tokens are invalid.
func ValidAt(token string, now time.Time) bool {
	expiry, err := ExpiresAt(token)
	if err != nil {
		return false
	}
	return expiry.After(now)
}
