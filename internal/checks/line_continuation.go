package checks

import (
	"context"
	"iter"
	"regexp"
	"strings"

	"sublint/internal/lint"
	"sublint/internal/neighbor"
	"sublint/internal/subs"
)

var (
	continuedEnding   = regexp.MustCompile(`[,:\p{Ll}]\z`)
	lowercaseStart    = regexp.MustCompile(`\A\p{Ll}`)
	continuationStart = regexp.MustCompile(`\A(I\s|I'(m|d|ll|ve)|\p{Ll}|[„”“"]\p{Lu})`)
)

type lineContinuationCheck struct {
	neighbors *neighbor.Index
}

func newLineContinuationCheck(lc *lint.Context) (lint.EventCheck, error) {
	return lineContinuationCheck{neighbors: lc.Neighbors}, nil
}

func (c lineContinuationCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		text := ev.PlainText()
		var prevText, nextText string
		prev, hasPrev := c.neighbors.Prev(ev)
		if hasPrev {
			prevText = prev.PlainText()
		}
		next, hasNext := c.neighbors.Next(ev)
		if hasNext {
			nextText = next.PlainText()
		}

		if hasNext && strings.HasSuffix(text, "…") && strings.HasPrefix(nextText, "…") {
			if !yield(lint.Warn("old-style line continuation", ev, next)) {
				return
			}
		}

		if ev.IsDialog() &&
			!endsWithWordWithPeriod(prevText) &&
			lowercaseStart.MatchString(text) &&
			!continuedEnding.MatchString(prevText) {
			if !yield(lint.Warn("sentence begins with a lowercase letter", ev)) {
				return
			}
		}

		if !ev.Comment && ev.IsDialog() &&
			continuedEnding.MatchString(text) &&
			!continuationStart.MatchString(nextText) {
			yield(lint.Warn("possibly unended sentence", ev))
		}
	}
}
