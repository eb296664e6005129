// Package services defines shared utilities consumed by the lint runner, the
// checks and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, check names and document paths for
//     logging.
//   - Structured error markers plus the Wrap helper that separate "this check
//     cannot run here" (configuration, missing resources) from real failures.
//
// Use these helpers when wiring new checks so operational behaviour stays
// uniform across the runner.
package services
