// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldSpec describes one form input.
type fieldSpec struct {
	label    string
	secret   bool
	optional bool
}

// form is a vertical list of labeled text inputs with one focused.
type form struct {
	labels   []string
	optional []bool
	inputs   []textinput.Model
	focus    int
}

func newForm(specs ...fieldSpec) form {
	f := form{
		labels:   make([]string, len(specs)),
		optional: make([]bool, len(specs)),
		inputs:   make([]textinput.Model, len(specs)),
	}
	for i, spec := range specs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = spec.label
		input.CharLimit = 256
		input.Width = 36
		// A static cursor keeps the program idle between keystrokes.
		input.Cursor.SetMode(cursor.CursorStatic)
		if spec.secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		f.labels[i] = spec.label
		f.optional[i] = spec.optional
		f.inputs[i] = input
	}
	f.inputs[0].Focus()
	return f
}

// setValues fills the inputs in order.
func (f *form) setValues(values ...string) {
	for i, value := range values {
		if i < len(f.inputs) {
			f.inputs[i].SetValue(value)
		}
	}
}

func (f *form) focusField(index int) {
	f.inputs[f.focus].Blur()
	f.focus = (index + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) next() { f.focusField(f.focus + 1) }

func (f *form) previous() { f.focusField(f.focus - 1) }

// update forwards a key to the focused input.
func (f form) update(message tea.KeyMsg) (form, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(message)
	return f, cmd
}

// value returns input i. Secret inputs are returned verbatim; the
// others are trimmed.
func (f form) value(index int) string {
	input := f.inputs[index]
	if input.EchoMode == textinput.EchoPassword {
		return input.Value()
	}
	return strings.TrimSpace(input.Value())
}

// complete reports whether every required input has a value.
func (f form) complete() bool {
	for i := range f.inputs {
		if !f.optional[i] && f.value(i) == "" {
			return false
		}
	}
	return true
}

func (f form) view(theme Theme) string {
	width := 0
	for _, label := range f.labels {
		width = max(width, len(label))
	}

	var builder strings.Builder
	for i, input := range f.inputs {
		marker := "  "
		if i == f.focus {
			marker = "> "
		}
		label := theme.label(i == f.focus).Render(padRight(f.labels[i], width))
		builder.WriteString(marker + label + "  " + input.View())
		if i < len(f.inputs)-1 {
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
