// Package logging builds slog loggers with console and JSON handlers and
// provides the attribute helpers used across the CLI.
package logging
