package subs

import (
	"strconv"
	"strings"
)

// Event is a single timed subtitle line. Times are milliseconds.
type Event struct {
	// Index is the 0-based position in the document, or -1 when the event
	// does not belong to one.
	Index   int
	Start   int
	End     int
	Layer   int
	Style   string
	Actor   string
	Effect  string
	Text    string
	Note    string
	Comment bool
}

// NewEvent returns a detached event with no assigned index.
func NewEvent(start, end int, text string) *Event {
	return &Event{Index: -1, Start: start, End: end, Text: text, Style: "Default"}
}

// Duration returns End minus Start.
func (e *Event) Duration() int {
	return e.End - e.Start
}

// Number renders the 1-based display number, or "?" when unassigned.
func (e *Event) Number() string {
	if e == nil || e.Index < 0 {
		return "?"
	}
	return strconv.Itoa(e.Index + 1)
}

// PlainText returns the text with override blocks removed.
func (e *Event) PlainText() string {
	return PlainText(e.Text)
}

// HasContent reports whether the event is a non-comment line with visible text.
func (e *Event) HasContent() bool {
	return !e.Comment && e.PlainText() != ""
}

// PlainText strips {...} override blocks and converts the \N, \n and \h
// escapes to a newline, newline and no-break space respectively.
func PlainText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	depth := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case depth > 0:
		case c == '\\' && i+1 < len(text):
			switch text[i+1] {
			case 'N', 'n':
				b.WriteByte('\n')
				i++
			case 'h':
				b.WriteRune('\u00a0')
				i++
			default:
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
