// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package students

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
)

type listParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List all students",
		Usage:   "roster students list [flags]",
		Examples: []cli.Example{
			{Description: "Print a table", Command: "roster students list"},
			{Description: "Emit JSON for scripts", Command: "roster students list --json"},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 0, "roster students list"); err != nil {
				return err
			}
			connection, err := connect(ctx, &params.ConnectionConfig)
			if err != nil {
				return err
			}

			students, err := connection.Client.ListStudents(ctx)
			if err != nil {
				return cli.APIFailure(err, "list students", "Failed to fetch students")
			}

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, students); done {
				return err
			}
			if len(students) == 0 {
				fmt.Fprintln(out, "No students found.")
				return nil
			}
			return writeTable(out, students)
		},
	}
}
