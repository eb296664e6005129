// Package checks implements the concrete subtitle checks and the default
// registry that orders them.
//
// Event checks inspect one line at a time and consult the neighbor index,
// layout service or snap detector from the lint Context. Document checks
// run once and mostly write summaries to the sink instead of yielding
// violations. Checks whose collaborators are missing disable themselves
// through lint.Disabled.
package checks
