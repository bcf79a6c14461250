// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by all command output, tuned for dark terminals.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	// SuccessStyle marks completed steps.
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	// ErrorStyle marks failures.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	// WarningStyle marks steps that did nothing or need attention.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	// PathStyle is for paths and names the user typed or will type.
	PathStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// printOK writes a success line: "✓ <msg> <subject>".
func printOK(w io.Writer, msg, subject string) {
	fmt.Fprintf(w, "%s %s %s\n", SuccessStyle.Render("✓"), msg, PathStyle.Render(subject))
}

// printWarn writes a warning line: "! <msg> <subject>".
func printWarn(w io.Writer, msg, subject string) {
	fmt.Fprintf(w, "%s %s %s\n", WarningStyle.Render("!"), msg, PathStyle.Render(subject))
}
