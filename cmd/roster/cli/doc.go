// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework behind the roster binary.
//
// A [Command] tree dispatches on positional names, parses flags with
// pflag, and prints structured help. Parameter structs bind their flags
// from struct tags through [FlagsFromParams]; types that manage their
// own flags, like [ConnectionConfig], implement [FlagBinder].
//
// Commands write through the [Streams] carried in their context rather
// than the process's standard files, so a test can capture everything
// a command prints. Errors returned to main are categorized with
// [ToolError] so that scripts can tell bad input from a dead server.
package cli
