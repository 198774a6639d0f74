// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package students

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
)

type showParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show one student",
		Usage:   "roster students show <id> [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("show", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 1, "roster students show <id>"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			connection, err := connect(ctx, &params.ConnectionConfig)
			if err != nil {
				return err
			}

			student, err := connection.Client.GetStudent(ctx, id)
			if err != nil {
				return cli.APIFailure(err, "show student", "Failed to fetch student")
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, student); done {
				return err
			}
			writeRecord(out, student)
			return nil
		},
	}
}
