// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers.
//
// [RequireReceive] and [RequireNoReceive] wrap the select-with-timeout
// pattern so tests that observe auth state notifications do not carry
// their own time.After calls. [Token] signs a bearer token with a
// chosen expiry. [WriteFile] writes a fixture into a test's temp
// directory and returns its path.
//
// All helpers call t.Fatalf on failure rather than returning errors.
package testutil
