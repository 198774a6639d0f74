// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package students

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/roster-project/roster/cmd/roster/cli"
)

type createParams struct {
	cli.ConnectionConfig
	cli.JSONOutput
	recordParams
}

func createCommand() *cli.Command {
	var params createParams

	return &cli.Command{
		Name:    "create",
		Summary: "Register a new student",
		Description: `Register a new student from flags or a record file.

Registration answers with a session for the new student, and that
session replaces the saved one: after create you are logged in as the
student you just registered.`,
		Usage: "roster students create [flags]",
		Examples: []cli.Example{
			{
				Description: "Create from flags, prompting for the password",
				Command:     `roster students create --name "Alan Turing" --email alan@example.com --course Logic`,
			},
			{
				Description: "Create from a record file",
				Command:     "roster students create --file alan.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
		Run: func(ctx context.Context, args []string) error {
			if err := cli.ExactArgs(args, 0, "roster students create"); err != nil {
				return err
			}
			input, err := params.collect()
			if err != nil {
				return err
			}
			if missing := missingFields(input); len(missing) > 0 {
				return cli.Validation("missing required fields: %s", strings.Join(missing, ", "))
			}

			connection, err := connect(ctx, &params.ConnectionConfig)
			if err != nil {
				return err
			}
			if err := promptPassword(ctx, &input); err != nil {
				return err
			}

			registration, err := connection.Client.CreateStudent(ctx, input)
			if err != nil {
				return cli.APIFailure(err, "create student", "Failed to register student")
			}
			connection.Logger.Info("student created",
				"student_id", registration.Student.ID,
				"session_email", connection.Auth.UserEmail(),
			)

			out := cli.StreamsFrom(ctx).Out
			if done, err := params.EmitJSON(out, registration.Student); done {
				return err
			}
			fmt.Fprintln(out, "Student registered successfully!")
			writeRecord(out, &registration.Student)
			fmt.Fprintf(out, "\nNow logged in as %s.\n", connection.Auth.UserEmail())
			return nil
		},
	}
}
