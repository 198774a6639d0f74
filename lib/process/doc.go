// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package process holds the error handling shared by the roster binary
// entrypoints.
package process
