package checks

import (
	"context"
	"iter"
	"strings"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

type styleValidityCheck struct {
	styles subs.StyleList
}

func newStyleValidityCheck(lc *lint.Context) (lint.EventCheck, error) {
	return styleValidityCheck{styles: lc.Document.Styles}, nil
}

func (c styleValidityCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		// Bracketed style names mark comment-only pseudo styles.
		if ev.Comment && strings.HasPrefix(ev.Style, "[") && strings.HasSuffix(ev.Style, "]") {
			return
		}
		if _, ok := c.styles.Get(ev.Style); !ok {
			yield(lint.Warn("using non-existing style", ev))
		}
	}
}
