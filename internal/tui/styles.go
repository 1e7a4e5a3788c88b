package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/trampcalc/internal/ui"
)

var (
	titleStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	accentStyle  lipgloss.Style
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds the styles from the current ui theme. Run calls
// it again after the theme has been initialized.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
}
