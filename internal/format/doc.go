// Package format renders durations, large numbers, byte sizes and progress
// indicators for the CLI and TUI.
package format
