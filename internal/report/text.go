package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"

	"sublint/internal/lint"
)

// TextSink writes one line per result: "[severity] message".
type TextSink struct {
	mu     sync.Mutex
	w      io.Writer
	color  bool
	counts map[lint.Severity]int
}

// NewTextSink writes to w, colouring severities when color is set.
func NewTextSink(w io.Writer, color bool) *TextSink {
	return &TextSink{w: w, color: color, counts: make(map[lint.Severity]int)}
}

// Log implements lint.Sink.
func (s *TextSink) Log(severity lint.Severity, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[severity]++
	fmt.Fprintf(s.w, "%s %s\n", s.label(severity), message)
}

// Count returns how many lines of the given severity were written.
func (s *TextSink) Count(severity lint.Severity) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[severity]
}

func (s *TextSink) label(severity lint.Severity) string {
	label := "[" + severity.String() + "]"
	if !s.color {
		return label
	}
	return severityColors(severity).Sprint(label)
}

func severityColors(severity lint.Severity) text.Colors {
	switch severity {
	case lint.SeverityDebug:
		return text.Colors{text.FgHiBlack}
	case lint.SeverityInfo:
		return text.Colors{text.FgCyan}
	case lint.SeverityWarning:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed, text.Bold}
	}
}
