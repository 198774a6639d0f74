// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package session persists the client's bearer token and the email of
// the user it belongs to.
//
// A [Store] holds exactly one [Session] or nothing. Token and email are
// always written and removed together: [FileStore] keeps both in a
// single JSON file replaced by rename, so a reader never sees one
// without the other, and a file missing either field reads as absent.
//
// Validity is advisory. [Store.IsValid] decodes the token's claims
// without verifying the signature and compares exp against the
// injected clock. The server stays the authority and may still reject
// a token this package considers valid; the student API client reacts
// to that by calling [Store.Clear].
//
// [MemoryStore] is the in-process implementation used by tests and by
// "roster --ephemeral-session".
package session
