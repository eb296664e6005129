package checks

import (
	"context"
	"fmt"
	"iter"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

type doubleWordsCheck struct{}

func newDoubleWordsCheck(*lint.Context) (lint.EventCheck, error) {
	return doubleWordsCheck{}, nil
}

func (doubleWordsCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		for _, word := range doubledWords(ev.PlainText()) {
			if !yield(lint.Warn(fmt.Sprintf("double word (%s)", word), ev)) {
				return
			}
		}
	}
}

// doubledWords finds whole words repeated after whitespace. Matches do not
// overlap: "a a a" reports one repetition.
func doubledWords(text string) []string {
	spans := wordSpans(text)
	var out []string
	for i := 0; i+1 < len(spans); i++ {
		first, second := spans[i], spans[i+1]
		if first.word == second.word && isBlank(text[first.end:second.start]) {
			out = append(out, first.word)
			i++
		}
	}
	return out
}
