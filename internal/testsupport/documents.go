package testsupport

import (
	"strconv"

	"sublint/internal/subs"
)

// NewDocument builds a document with a Default style from texts. Events are
// 1 s long and 1 s apart.
func NewDocument(texts ...string) *subs.Document {
	events := make([]*subs.Event, len(texts))
	for i, text := range texts {
		events[i] = subs.NewEvent(i*2000, i*2000+1000, text)
	}
	return subs.NewDocument(subs.StyleList{subs.DefaultStyle("Default")}, events)
}

// WithResolution sets PlayResX and PlayResY on doc and returns it.
func WithResolution(doc *subs.Document, width, height int) *subs.Document {
	doc.Info.Set("PlayResX", strconv.Itoa(width))
	doc.Info.Set("PlayResY", strconv.Itoa(height))
	return doc
}
