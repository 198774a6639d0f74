// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete roster CLI command tree.
package commands

import (
	"context"
	"fmt"

	"github.com/roster-project/roster/cmd/roster/account"
	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/cmd/roster/students"
	"github.com/roster-project/roster/cmd/roster/ui"
	"github.com/roster-project/roster/lib/version"
)

// Root builds and returns the complete roster command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "roster",
		Description: `roster: manage student records through the student API.

Log in or register once; the session is saved and reused by every
command until the token expires or the server rejects it.`,
		Subcommands: []*cli.Command{
			account.LoginCommand(),
			account.RegisterCommand(),
			account.LogoutCommand(),
			account.WhoAmICommand(),
			students.Command(),
			ui.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(ctx context.Context, args []string) error {
					if err := cli.ExactArgs(args, 0, "roster version"); err != nil {
						return err
					}
					fmt.Fprintf(cli.StreamsFrom(ctx).Out, "roster %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Log in (prompts for the password)",
				Command:     "roster login ada@example.com",
			},
			{
				Description: "List every student",
				Command:     "roster students list",
			},
			{
				Description: "Register a student from a JSON file",
				Command:     "roster students create --file grace.json",
			},
			{
				Description: "Open the interactive application",
				Command:     "roster ui",
			},
		},
	}
}
