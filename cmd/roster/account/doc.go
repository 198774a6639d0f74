// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package account implements the session commands: login, register,
// logout, and whoami. Each one works against the session store chosen
// by the shared connection flags.
package account
