package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the ANSI palette of the command-line output. Each field holds the
// escape sequence for one role; an empty string prints plain text.
type Theme struct {
	// Name is the value accepted by SetTheme.
	Name string
	// Primary colors the algorithm column of the comparison table.
	Primary string
	// Secondary colors digit counts and step totals.
	Secondary string
	// Success colors algorithm names and the "Success" status of a
	// comparison row.
	Success string
	// Warning colors durations and refused calculations (step or recursion
	// budget exhausted, infeasible arguments).
	Warning string
	// Error colors failures, timeouts and result mismatches.
	Error string
	// Info colors the request label, e.g. "A(3, 3)" or "F(100)".
	Info string
	// Bold is the escape sequence for bold text.
	Bold string
	// Underline is the escape sequence for underlined text.
	Underline string
	// Reset clears all attributes.
	Reset string
}

var (
	// DarkTheme is the default, tuned for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",  // bright blue
		Secondary: "\033[38;5;245m", // grey
		Success:   "\033[38;5;82m",  // bright green
		Warning:   "\033[38;5;220m", // yellow
		Error:     "\033[38;5;196m", // red
		Info:      "\033[38;5;141m", // purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker shades that stay readable on light
	// backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",  // dark blue
		Secondary: "\033[38;5;240m", // dark grey
		Success:   "\033[38;5;28m",  // dark green
		Warning:   "\033[38;5;130m", // orange
		Error:     "\033[38;5;124m", // dark red
		Info:      "\033[38;5;54m",  // dark purple
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme has every sequence empty. It is selected by --no-color
	// and by the NO_COLOR environment variable, and keeps quiet output and
	// result files free of escape codes.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the --tui dashboard.
type TUITheme struct {
	// Text is the default foreground.
	Text lipgloss.TerminalColor
	// Border outlines the progress, comparison and result panels.
	Border lipgloss.TerminalColor
	// Accent colors the title, the spinner and the step-rate sparkline.
	Accent lipgloss.TerminalColor
	// Success colors the final result and successful comparison rows.
	Success lipgloss.TerminalColor
	// Warning colors refused calculations.
	Warning lipgloss.TerminalColor
	// Error colors failures and mismatches.
	Error lipgloss.TerminalColor
	// Dim colors labels, key help and system statistics.
	Dim lipgloss.TerminalColor
}

var (
	// DarkTUITheme matches DarkTheme.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"), // light grey
		Border:  lipgloss.Color("#5F87FF"), // blue
		Accent:  lipgloss.Color("#00AFFF"), // bright blue
		Success: lipgloss.Color("#9ECE6A"), // green
		Warning: lipgloss.Color("#FFB347"), // orange
		Error:   lipgloss.Color("#FF4444"), // red
		Dim:     lipgloss.Color("#666666"), // dark grey
	}

	// NoColorTUITheme renders the dashboard without colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns NoColorTUITheme when colors are disabled and
// DarkTUITheme otherwise.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active command-line theme. It is safe for
// concurrent use with SetCurrentTheme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name: "dark", "light" or "none". Unknown
// names select the dark theme.
func SetTheme(name string) {
	switch name {
	case LightTheme.Name:
		SetCurrentTheme(LightTheme)
	case NoColorTheme.Name:
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}

// InitTheme disables colors when noColor is set or NO_COLOR is present in
// the environment (https://no-color.org), and selects the dark theme
// otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
