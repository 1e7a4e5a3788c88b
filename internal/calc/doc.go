// Package calc adapts the ackermann and fibonacci packages to a single
// Calculator interface so that the orchestration layer, the HTTP server and
// the TUI can run, compare and bound any algorithm the same way.
package calc
