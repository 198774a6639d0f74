// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret holds passwords and session tokens in memory that is
// kept off the Go heap.
//
// [Buffer] is backed by an anonymous mmap region that is locked
// against swap and excluded from core dumps. Close zeros and unmaps
// it. Passwords read by the CLI ([ReadFromPath], [Prompt]) land in a
// Buffer and are converted to a string only at the moment they are
// placed in a request body.
//
// [Zero] overwrites a heap slice in place. The session store uses it
// on the raw bytes of the session file after decoding.
package secret
