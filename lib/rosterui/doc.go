// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package rosterui is the terminal application for the student API: a
// login screen, a registration screen, and a dashboard that lists,
// creates, edits, and deletes student records.
//
// Screens are addressed by route paths ("/login", "/register",
// "/home", "/dashboard"). [Resolve] applies the guards: protected
// routes need a valid session and send everyone else to "/login",
// while the public screens send a logged-in user home. Navigation
// re-derives the session state first, so a token that expired while
// the program was idle is caught at the next screen change without a
// request.
//
// The model runs on bubbletea's event loop. Requests run as commands
// and report back as messages; a request that ends the session (401)
// navigates to "/" once. Auth state changes are pushed into the
// program by [Run] from the [authstate.Context] subscription.
//
// Flash messages dismiss themselves after the configured timeout. The
// delay is scheduled through [Config.After], which tests replace to
// control time.
package rosterui
