// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for every screen.
type KeyMap struct {
	Quit key.Binding

	// Forms.
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Cancel    key.Binding

	// Switching between the public screens.
	GoRegister key.Binding
	GoLogin    key.Binding

	// Dashboard.
	Create  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Confirm key.Binding
	Refresh key.Binding
	Logout  key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("Tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-Tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	GoRegister: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("C-r", "register"),
	),
	GoLogin: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "login"),
	),
	Create: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "logout"),
	),
}

// screenHelp adapts a set of bindings to help.KeyMap.
type screenHelp []key.Binding

func (bindings screenHelp) ShortHelp() []key.Binding { return bindings }

func (bindings screenHelp) FullHelp() [][]key.Binding { return [][]key.Binding{bindings} }

func (keys KeyMap) loginHelp() screenHelp {
	return screenHelp{keys.NextField, keys.Submit, keys.GoRegister, keys.Quit}
}

func (keys KeyMap) registerHelp() screenHelp {
	return screenHelp{keys.NextField, keys.Submit, keys.GoLogin, keys.Quit}
}

func (keys KeyMap) browseHelp() screenHelp {
	return screenHelp{keys.Create, keys.Edit, keys.Delete, keys.Refresh, keys.Logout, keys.Quit}
}

func (keys KeyMap) editorHelp() screenHelp {
	return screenHelp{keys.NextField, keys.Submit, keys.Cancel, keys.Quit}
}

func (keys KeyMap) confirmHelp() screenHelp {
	return screenHelp{keys.Confirm, keys.Cancel}
}
