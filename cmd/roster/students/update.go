// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package students

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
)

type updateParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	recordParams
}

func updateCommand() *cli.Command {
	var params updateParams

	return &cli.Command{
		Name:    "update",
		Summary: "Update a student",
		Description: `Update a student record. Fields that are not given keep their
current values. The password changes only when --password-file or the
record file supplies one.`,
		Usage: "roster students update <id> [flags]",
		Examples: []cli.Example{
			{
				Description: "Move a student to another course",
				Command:     "roster students update 3 --course Physics",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("update", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 1, "roster students update <id>"); err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			input, err := params.collect()
			if err != nil {
				return err
			}

			connection, err := connect(ctx, &params.ConnectionConfig)
			if err != nil {
				return err
			}

			current, err := connection.Client.GetStudent(ctx, id)
			if err != nil {
				return cli.APIFailure(err, "update student", "Failed to update student")
			}
			if input.Name == "" {
				input.Name = current.Name
			}
			if input.Email == "" {
				input.Email = current.Email
			}
			if input.Course == "" {
				input.Course = current.Course
			}

			updated, err := connection.Client.UpdateStudent(ctx, id, input)
			if err != nil {
				return cli.APIFailure(err, "update student", "Failed to update student")
			}
			connection.Logger.Info("student updated", "student_id", id)

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, updated); done {
				return err
			}
			fmt.Fprintln(out, "Student updated successfully!")
			writeRecord(out, updated)
			return nil
		},
	}
}
