// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"github.com/roster-project/roster/lib/authstate"
	"github.com/roster-project/roster/lib/studentapi"
)

type flashKind int

const (
	flashSuccess flashKind = iota
	flashError
)

// flash is the one message line under the header. seq identifies it so
// that only its own expiry clears it.
type flash struct {
	text string
	kind flashKind
	seq  int
}

// flashExpiredMsg clears the flash with the same seq.
type flashExpiredMsg struct {
	seq int
}

// navigateMsg moves to path, after guards.
type navigateMsg struct {
	path string
}

// AuthChangedMsg carries a new auth snapshot into the program.
type AuthChangedMsg struct {
	Snapshot authstate.Snapshot
}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	registration *studentapi.Registration
	err          error
}

type studentsFetchedMsg struct {
	students []studentapi.Student
	err      error
}

type studentCreatedMsg struct {
	registration *studentapi.Registration
	err          error
}

type studentUpdatedMsg struct {
	student *studentapi.Student
	err     error
}

type studentDeletedMsg struct {
	id  int
	err error
}
