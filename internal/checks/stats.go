package checks

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

// tally counts occurrences while remembering first-seen order.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// byCount returns keys by descending count; ties keep first-seen order.
func (t *tally) byCount() []string {
	out := append([]string(nil), t.order...)
	sort.SliceStable(out, func(i, j int) bool {
		return t.counts[out[i]] > t.counts[out[j]]
	})
	return out
}

type summaryCheck struct {
	doc    *subs.Document
	sink   lint.Sink
	header string
	key    func(*subs.Event) string
}

func newActorStatsCheck(lc *lint.Context) (lint.DocumentCheck, error) {
	return summaryCheck{
		doc:    lc.Document,
		sink:   lc.Sink,
		header: "Actors summary:",
		key:    func(ev *subs.Event) string { return ev.Actor },
	}, nil
}

func newStyleStatsCheck(lc *lint.Context) (lint.DocumentCheck, error) {
	return summaryCheck{
		doc:    lc.Document,
		sink:   lc.Sink,
		header: "Styles summary:",
		key:    func(ev *subs.Event) string { return ev.Style },
	}, nil
}

func (c summaryCheck) Run(context.Context) iter.Seq[lint.Violation] {
	return func(func(lint.Violation) bool) {
		c.sink.Log(lint.SeverityInfo, c.header)
		counts := newTally()
		for _, ev := range c.doc.Events {
			counts.add(c.key(ev), 1)
		}
		for _, name := range counts.byCount() {
			c.sink.Log(lint.SeverityInfo, fmt.Sprintf("– %d time(s): %s", counts.counts[name], name))
		}
	}
}

// statChars are the marks whose overuse the punctuation summary exposes.
var statChars = []string{"!", "…"}

type punctuationStatsCheck struct {
	doc  *subs.Document
	sink lint.Sink
}

func newPunctuationStatsCheck(lc *lint.Context) (lint.DocumentCheck, error) {
	return punctuationStatsCheck{doc: lc.Document, sink: lc.Sink}, nil
}

func (c punctuationStatsCheck) Run(context.Context) iter.Seq[lint.Violation] {
	return func(func(lint.Violation) bool) {
		counts := newTally()
		for _, char := range statChars {
			counts.add(char, 0)
		}
		for _, ev := range c.doc.Events {
			if ev.IsTitle() || ev.IsKaraoke() {
				continue
			}
			text := ev.PlainText()
			for _, char := range statChars {
				counts.add(char, strings.Count(text, char))
			}
		}
		parts := make([]string, 0, len(statChars))
		for _, char := range counts.order {
			parts = append(parts, fmt.Sprintf("%s: %d", char, counts.counts[char]))
		}
		c.sink.Log(lint.SeverityInfo, "Punctuation stats: "+strings.Join(parts, ", "))
	}
}
