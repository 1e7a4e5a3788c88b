// Package logging is the structured logging facade used by the server, the
// orchestration layer and the CLI. Components depend on the Logger interface;
// the zerolog adapter is the only backend, with Nop for tests and quiet runs.
package logging
