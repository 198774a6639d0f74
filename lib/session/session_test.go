// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/roster-project/roster/lib/testutil"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestValidAt(t *testing.T) {
	header := segment(`{"alg":"HS256","typ":"JWT"}`)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future exp", testutil.Token(t, "s@x.com", now.Add(time.Hour)), true},
		{"past exp", testutil.Token(t, "s@x.com", now.Add(-time.Hour)), false},
		{"exp equals now", testutil.Token(t, "s@x.com", now), false},
		{"one second left", testutil.Token(t, "s@x.com", now.Add(time.Second)), true},
		{"empty", "", false},
		{"one segment", "abc", false},
		{"two segments", header + "." + segment(`{"exp":9999999999}`), false},
		{"four segments", header + "." + segment(`{"exp":9999999999}`) + ".sig.extra", false},
		{"payload not base64url", header + ".!!!." + "sig", false},
		{"payload not json", header + "." + segment("not json") + ".sig", false},
		{"no exp", header + "." + segment(`{"sub":"s@x.com"}`) + ".sig", false},
		{"header not json", segment("nope") + "." + segment(`{"exp":9999999999}`) + ".sig", true},
		{"unknown alg", segment(`{"alg":"ES256K"}`) + "." + segment(`{"exp":9999999999}`) + ".sig", true},
		{"no alg", segment(`{"typ":"JWT"}`) + "." + segment(`{"exp":9999999999}`) + ".sig", true},
		{"empty header", "." + segment(`{"exp":9999999999}`) + ".", true},
		{"unknown alg expired", segment(`{"alg":"ES256K"}`) + "." + segment(`{"exp":1}`) + ".sig", false},
		{"unsigned signature ignored", header + "." + segment(`{"exp":9999999999}`) + ".not-a-real-signature", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := ValidAt(test.token, now); got != test.want {
				t.Errorf("ValidAt(%q) = %v, want %v", test.token, got, test.want)
			}
		})
	}
}

func TestExpiresAt(t *testing.T) {
	exp := now.Add(90 * time.Minute)
	got, err := ExpiresAt(testutil.Token(t, "s@x.com", exp))
	if err != nil {
		t.Fatalf("ExpiresAt: %v", err)
	}
	if !got.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", got, exp)
	}

	if _, err := ExpiresAt("garbage"); err == nil {
		t.Error("ExpiresAt(garbage) succeeded, want error")
	}
}
