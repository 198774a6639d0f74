// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/roster-project/roster/lib/authstate"
)

// Run builds the model and runs it as a full-screen program until the
// user quits or ctx is done. Auth transitions made outside the model,
// such as the client's 401 teardown, reach it as AuthChangedMsg.
func Run(ctx context.Context, config Config, input io.Reader, output io.Writer) error {
	model, err := New(ctx, config)
	if err != nil {
		return err
	}

	options := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if input != nil {
		options = append(options, tea.WithInput(input))
	}
	if output != nil {
		options = append(options, tea.WithOutput(output))
	}
	program := tea.NewProgram(model, options...)

	updates, cancel := config.Auth.Subscribe()
	defer cancel()

	forwardContext, stopForwarding := context.WithCancel(ctx)
	defer stopForwarding()
	go forwardAuthChanges(forwardContext, updates, program.Send)

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// forwardAuthChanges delivers each snapshot from updates to send until
// ctx is done.
func forwardAuthChanges(ctx context.Context, updates <-chan authstate.Snapshot, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case snapshot := <-updates:
			send(AuthChangedMsg{Snapshot: snapshot})
		}
	}
}
