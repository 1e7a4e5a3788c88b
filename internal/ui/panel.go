package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel renders a titled, bordered box around lines, in the active TUI
// palette. The CLI uses it for the final result and the TUI for its
// summary view.
func Panel(title string, lines []string, width int) string {
	t := GetCurrentTUITheme()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	if width > 0 {
		box = box.Width(width)
	}
	body := titleStyle.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	return box.Render(body)
}

// KeyValue renders "key: value" with the key dimmed.
func KeyValue(key, value string) string {
	t := GetCurrentTUITheme()
	return lipgloss.NewStyle().Foreground(t.Dim).Render(key+":") + " " + value
}
