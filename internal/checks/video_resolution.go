package checks

import (
	"context"
	"iter"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

type videoResolutionCheck struct {
	doc  *subs.Document
	sink lint.Sink
}

func newVideoResolutionCheck(lc *lint.Context) (lint.DocumentCheck, error) {
	return videoResolutionCheck{doc: lc.Document, sink: lc.Sink}, nil
}

func (c videoResolutionCheck) Run(context.Context) iter.Seq[lint.Violation] {
	return func(func(lint.Violation) bool) {
		if c.doc.PlayResX() == 0 {
			c.sink.Log(lint.SeverityError, "Unknown video width.")
		}
		if c.doc.PlayResY() == 0 {
			c.sink.Log(lint.SeverityError, "Unknown video height.")
		}
		if c.doc.AspectRatio() == subs.AspectUnknown {
			c.sink.Log(lint.SeverityError, "Unknown aspect ratio.")
		}
	}
}
