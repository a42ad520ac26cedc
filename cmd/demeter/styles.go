// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by every command.
const (
	// ColorPrimary is purple, for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, for module names and commands.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for module names, keys and commands.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// tableHeaderStyle styles the header row of `modules list`.
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
