// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the HS256 key used by Token.
var TokenKey = []byte("roster-test-signing-key")

// Token returns an HS256 bearer token for email that expires at exp.
func Token(t TB, email string, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(TokenKey)
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}
