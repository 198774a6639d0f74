// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ReadFromPath reads a secret from a file, or from stdin when path is
// "-". Surrounding whitespace is trimmed. An empty result is an error.
func ReadFromPath(path string) (*Buffer, error) {
	if path == "-" {
		return readLine(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	defer Zero(data)
	return fromTrimmed(data)
}

// Prompt writes label to out and reads a line from the terminal on fd
// with echo disabled. When fd is not a terminal the line is read from
// in as-is, so piped input still works.
func Prompt(fd int, in io.Reader, out io.Writer, label string) (*Buffer, error) {
	fmt.Fprint(out, label)
	if !term.IsTerminal(fd) {
		return readLine(in)
	}
	data, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}
	defer Zero(data)
	return fromTrimmed(data)
}

func readLine(in io.Reader) (*Buffer, error) {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return nil, errors.New("input is empty")
	}
	data := scanner.Bytes()
	defer Zero(data)
	return fromTrimmed(data)
}

func fromTrimmed(data []byte) (*Buffer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("secret is empty")
	}
	return NewFromBytes(trimmed)
}
