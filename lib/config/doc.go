// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads roster's configuration.
//
// Sources, lowest precedence first:
//
//  1. [Default] values.
//  2. The YAML file named by the --config flag or $ROSTER_CONFIG. With
//     neither set, no file is read.
//  3. The section of that file matching the environment
//     (development or production).
//  4. ROSTER_API_URL, ROSTER_SESSION_FILE, and ROSTER_LOG_LEVEL.
//  5. Command-line flags, applied by the caller after Load returns.
//
// A .env file in the working directory is loaded into the process
// environment first (variables already set win), so both the override
// variables and ${VAR:-default} references inside the YAML can come
// from it.
package config
