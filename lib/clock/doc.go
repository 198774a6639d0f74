// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Session validity is decided against the token's exp claim, so any
// code that compares a deadline to "now" takes a Clock instead of
// calling time.Now directly. Production code passes Real(); tests pass
// Fake() and move time explicitly:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	store := session.NewFileStore(path, c)
//	c.Advance(2 * time.Hour) // the stored token is now past exp
package clock
