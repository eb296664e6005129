package checks

import (
	"context"
	"iter"
	"regexp"
	"strings"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

var (
	quotePunctInside       = regexp.MustCompile(`[:,]["”]`)
	quotePunctOutside      = regexp.MustCompile(`["”][\.,…?!]`)
	quoteSentenceAfterWord = regexp.MustCompile(`[a-z]\s[„“"].+[\.…?!]["”]`)
	quoteSentenceInside    = regexp.MustCompile(`[„“"].+[\.…?!]["”]`)
)

type quotesCheck struct{}

func newQuotesCheck(*lint.Context) (lint.EventCheck, error) {
	return quotesCheck{}, nil
}

func (quotesCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		text := ev.PlainText()
		plain := strings.Count(text, `"`)

		if plain > 0 && !yield(lint.Info("plain quotation mark", ev)) {
			return
		}

		opening := strings.Count(text, "„") + strings.Count(text, "“")
		if opening != strings.Count(text, "”") || plain%2 == 1 {
			yield(lint.Info("partial quote", ev))
			return
		}

		if quotePunctInside.MatchString(text) && !yield(lint.Warn("punctuation inside quotation marks", ev)) {
			return
		}
		if quotePunctOutside.MatchString(text) && !yield(lint.Debug("punctuation outside quotation marks", ev)) {
			return
		}

		// Quoted sentences mid-line keep their punctuation inside; a quote
		// opening the line is only noted.
		switch {
		case quoteSentenceAfterWord.MatchString(text):
			yield(lint.Warn("punctuation inside quotation marks", ev))
		case quoteSentenceInside.MatchString(text):
			yield(lint.Debug("punctuation inside quotation marks", ev))
		}
	}
}
