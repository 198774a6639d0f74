// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitCoder is an error that carries its own exit code. Commands that
// already printed their output return one to skip the "error:" line.
type exitCoder interface {
	ExitCode() int
}

// Fatal reports err and exits. See [Report] for the code and output.
func Fatal(err error) {
	os.Exit(Report(os.Stderr, err))
}

// Report writes "error: err" to w and returns 1, or returns the code of
// an error with an ExitCode method without writing anything. A nil err
// returns 0.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
