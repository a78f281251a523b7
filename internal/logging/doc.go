// Package logging assembles structured slog loggers and formatting helpers used
// across loadmaster commands and services.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so export and preview code can
// tag log lines with record ids, chalks, export runs and correlation ids. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
