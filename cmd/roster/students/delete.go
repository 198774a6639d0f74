// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package students

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
)

type deleteParams struct {
	cli.ConnectionConfig
}

func deleteCommand() *cli.Command {
	var params deleteParams

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a student",
		Usage:   "roster students delete <id> [flags]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("delete", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 1, "roster students delete <id>"); err != nil {
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

			if err := connection.Client.DeleteStudent(ctx, id); err != nil {
				return cli.APIFailure(err, "delete student", "Failed to delete student")
			}
			connection.Logger.Info("student deleted", "student_id", id)
			fmt.Fprintln(cli.StreamsFrom(ctx).Out, "Student deleted successfully!")
			return nil
		},
	}
}
