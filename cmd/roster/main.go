// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/cmd/roster/commands"
	"github.com/roster-project/roster/lib/process"
)

func main() {
	// Commands that print their own output return a cli.ExitError;
	// Fatal exits with its code and no extra "error:" line.
	if err := run(); err != nil {
		process.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = cli.WithStreams(ctx, cli.StandardStreams())
	return commands.Root().Execute(ctx, os.Args[1:])
}
