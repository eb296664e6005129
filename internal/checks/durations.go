package checks

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"sublint/internal/lint"
	"sublint/internal/neighbor"
	"sublint/internal/subs"
)

const (
	minDurationMs     = 250
	minLongDurationMs = 500
	minGapMs          = 250
	// longTextWords is the word count above which minLongDurationMs applies.
	longTextWords = 2
)

type durationsCheck struct {
	neighbors *neighbor.Index
}

func newDurationsCheck(lc *lint.Context) (lint.EventCheck, error) {
	return durationsCheck{neighbors: lc.Neighbors}, nil
}

func (c durationsCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		if !ev.HasContent() || ev.IsKaraoke() {
			return
		}

		words := len(strings.Fields(ev.PlainText()))
		switch {
		case words > longTextWords && ev.Duration() < minLongDurationMs:
			if !yield(lint.Warn(fmt.Sprintf("duration shorter than %d ms", minLongDurationMs), ev)) {
				return
			}
		case ev.Duration() < minDurationMs:
			if !yield(lint.Warn(fmt.Sprintf("duration shorter than %d ms", minDurationMs), ev)) {
				return
			}
		}

		next, ok := c.neighbors.Next(ev)
		if !ok {
			return
		}
		if gap := next.Start - ev.End; gap > 0 && gap < minGapMs {
			yield(lint.Warn(fmt.Sprintf("gap shorter than %d ms (%d ms)", minGapMs, gap), ev))
		}
	}
}
