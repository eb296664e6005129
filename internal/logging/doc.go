// Package logging assembles structured slog loggers and formatting helpers used
// across sublint.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so check code automatically tags
// log lines with the run ID, the running check and the document path. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
package logging
