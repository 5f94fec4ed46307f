// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for all carecost CLI commands.
//
// Colors are automatically disabled for non-TTY output and respect the
// NO_COLOR and FORCE_COLOR environment variables via GetColorProfile.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("37")). // Teal
			MarginBottom(1)

	// SectionStyle is used for section headers within command output
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(1)

	// LabelStyle is used for field labels in status-style output
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(22)

	// ValueStyle is used for regular values
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	// SuccessStyle marks successful operations and reachable services
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	// ErrorStyle marks errors and failures
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// WarningStyle marks warnings
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	// DimStyle is used for hints and secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// RenderKV renders an aligned "label: value" line for status output.
func RenderKV(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}

// Divider renders a horizontal rule sized to the terminal.
func Divider() string {
	width := GetTerminalWidth()
	if width > 60 {
		width = 60
	}
	return DimStyle.Render(strings.Repeat("-", width))
}
