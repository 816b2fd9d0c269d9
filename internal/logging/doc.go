// Package logging assembles the structured slog loggers used by migrunner.
//
// It owns the console and JSON handlers, the CRITICAL and FATAL levels that
// sit above slog's built-in ERROR, and the standard field keys (customer,
// migration type, session id) that preflight output is tagged with. A no-op
// logger is provided for tests and for callers that only need the boolean
// answers of a check.
//
// Logging a FATAL record never terminates the process; exit decisions belong
// to the command layer.
package logging
