// Copyright 2026 The Roster Authors
// SPDX-License-Identifier: Apache-2.0

package rosterui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the application. All colors are
// ANSI 256-color codes.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Flash message colors.
	SuccessForeground lipgloss.Color
	ErrorForeground   lipgloss.Color

	// Focused form field label.
	FocusForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SuccessForeground: lipgloss.Color("114"), // green
	ErrorForeground:   lipgloss.Color("196"), // red

	FocusForeground: lipgloss.Color("75"), // blue
}

func (theme Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
}

func (theme Theme) faint() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.FaintText)
}

func (theme Theme) help() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.HelpText)
}

func (theme Theme) flash(kind flashKind) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if kind == flashError {
		return style.Foreground(theme.ErrorForeground)
	}
	return style.Foreground(theme.SuccessForeground)
}

func (theme Theme) panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)
}

func (theme Theme) label(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(theme.FocusForeground)
	}
	return lipgloss.NewStyle().Foreground(theme.NormalText)
}

func (theme Theme) tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.BorderColor).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.HeaderForeground)
	styles.Cell = styles.Cell.Foreground(theme.NormalText)
	styles.Selected = styles.Selected.
		Foreground(theme.SelectedForeground).
		Background(theme.SelectedBackground).
		Bold(false)
	return styles
}
