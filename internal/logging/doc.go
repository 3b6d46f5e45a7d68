// Package logging assembles structured slog loggers and formatting helpers used
// across commongames.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so resolver and cache code can tag log
// lines with the run and account identifiers. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
//
// Diagnostics are a side channel: the CLI points loggers at stderr so the
// resolved game list on stdout stays clean.
package logging
