// Package lint is the check orchestration core.
//
// Checks come in two kinds. EventChecks run once per event in document
// order; DocumentChecks run once and may log summaries to the Sink. A
// Registry lists checks in reporting order and splits them into a cheap tier
// and an expensive tier (network or video decoding). The Runner yields
// results lazily, check by check, and isolates failures: a check that fails
// to start or panics is logged and the run continues.
//
// Focus and Navigator move the selection to the previous or next event with
// a Warning or Error result.
package lint
