// Package logging assembles structured slog loggers and formatting helpers used
// across swingmatch.
//
// It owns the console and JSON handlers, routes output to stderr and the log
// directory, and colours console level labels when writing to a terminal.
// Context helpers tag log lines with comparison IDs and reference names.
// NewNop provides a silent logger for tests and library callers that pass no
// logger.
package logging
