// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

// Package students implements "roster students": list, show, create,
// update, and delete against the student API. Every subcommand needs a
// valid saved session and fails before contacting the server without
// one.
package students

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"

	"github.com/roster-project/roster/cmd/roster/cli"
	"github.com/roster-project/roster/lib/studentapi"
)

// Command returns the "students" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "students",
		Summary: "List and manage student records",
		Description: `List, inspect, create, update, and delete student records.

All subcommands act as the logged-in user (see "roster login").`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
		},
	}
}

// connect opens the connection and refuses to continue without a
// valid session.
func connect(ctx context.Context, connectionConfig *cli.ConnectionConfig) (*cli.Connection, error) {
	connection, err := connectionConfig.Connect(ctx)
	if err != nil {
		return nil, err
	}
	if err := connection.RequireLogin(); err != nil {
		return nil, err
	}
	return connection, nil
}

func parseID(value string) (int, error) {
	id, err := studentapi.ParseID(value)
	if err != nil {
		return 0, cli.Validation("invalid student id %q: must be a positive integer", value)
	}
	return id, nil
}

// maxCellWidth bounds each table cell; longer values are cut with an
// ellipsis.
const maxCellWidth = 40

func cell(value string) string {
	return ansi.Truncate(value, maxCellWidth, "…")
}

func writeTable(w io.Writer, students []studentapi.Student) error {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCOURSE")
	for _, student := range students {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", student.ID, cell(student.Name), cell(student.Email), cell(student.Course))
	}
	return tw.Flush()
}

func writeRecord(w io.Writer, student *studentapi.Student) {
	fmt.Fprintf(w, "ID:      %d\n", student.ID)
	fmt.Fprintf(w, "Name:    %s\n", student.Name)
	fmt.Fprintf(w, "Email:   %s\n", student.Email)
	fmt.Fprintf(w, "Course:  %s\n", student.Course)
}
