// Package ui holds the color themes shared by the CLI and the TUI: ANSI
// escape sequences for line-oriented output and lipgloss colors for the
// dashboard. Colors are disabled by --no-color or the NO_COLOR variable.
package ui
