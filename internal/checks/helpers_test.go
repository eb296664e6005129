package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"sublint/internal/lint"
	"sublint/internal/subs"
	"sublint/internal/testsupport"
)

func newTestContext(doc *subs.Document) (*lint.Context, *lint.RecordingSink) {
	sink := &lint.RecordingSink{}
	return lint.NewContext(doc, sink, nil), sink
}

// runEvent builds the check for doc and returns its results for the event at index.
func runEvent(t *testing.T, factory func(*lint.Context) (lint.EventCheck, error), doc *subs.Document, index int) []lint.Violation {
	t.Helper()
	lc, _ := newTestContext(doc)
	return runEventWith(t, factory, lc, index)
}

func runEventWith(t *testing.T, factory func(*lint.Context) (lint.EventCheck, error), lc *lint.Context, index int) []lint.Violation {
	t.Helper()
	check, err := factory(lc)
	require.NoError(t, err)
	var out []lint.Violation
	for v := range check.RunForEvent(context.Background(), lc.Document.Events[index]) {
		out = append(out, v)
	}
	return out
}

// runAll collects results for every event in document order.
func runAll(t *testing.T, factory func(*lint.Context) (lint.EventCheck, error), doc *subs.Document) []lint.Violation {
	t.Helper()
	var out []lint.Violation
	for i := range doc.Events {
		out = append(out, runEvent(t, factory, doc, i)...)
	}
	return out
}

func messages(violations []lint.Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.Message
	}
	return out
}

func singleEvent(text string) *subs.Document {
	return testsupport.NewDocument(text)
}

func timedDocument(events ...*subs.Event) *subs.Document {
	return subs.NewDocument(subs.StyleList{subs.DefaultStyle("Default")}, events)
}

func comment(ev *subs.Event) *subs.Event {
	ev.Comment = true
	return ev
}
