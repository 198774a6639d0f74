// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package studentapi is the client for the remote student-management
// REST API.
//
// Every call goes through [Client.Request], which reads the current
// token from a [session.Store] at call time and sends it as a bearer
// credential. A 401 from any protected endpoint clears the store
// before Request returns and marks the [Response] SessionEnded. The
// client never navigates or exits: callers (the terminal application,
// the CLI) inspect the signal and react.
//
// Login and registration are credential exchanges. They share one
// path that posts the credentials anonymously, extracts the issued
// token and email, and saves them to the store exactly once.
//
// Resource paths are relative to the configured base URL, which names
// the student collection itself (for example
// http://localhost:8080/api/students). Listing is GET on the base URL
// with no trailing slash.
package studentapi
