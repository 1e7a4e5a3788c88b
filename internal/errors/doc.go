// Package apperrors defines the structured error types shared by the CLI,
// the HTTP server and the TUI, and maps them to process exit codes.
//
// Every wrapper implements Unwrap, so callers inspect causes with errors.Is
// and errors.As rather than by matching messages.
package apperrors
