package lint

import (
	"context"
	"iter"
	"log/slog"

	"sublint/internal/layout"
	"sublint/internal/neighbor"
	"sublint/internal/services"
	"sublint/internal/snap"
	"sublint/internal/subs"
	"sublint/internal/video"
)

// Sink receives user-facing log lines: rendered violations and the
// summaries printed by document checks.
type Sink interface {
	Log(severity Severity, message string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Severity, string)

func (f SinkFunc) Log(severity Severity, message string) { f(severity, message) }

// Line is one message captured by a RecordingSink.
type Line struct {
	Severity Severity
	Message  string
}

// RecordingSink keeps every line in memory.
type RecordingSink struct {
	Lines []Line
}

func (r *RecordingSink) Log(severity Severity, message string) {
	r.Lines = append(r.Lines, Line{Severity: severity, Message: message})
}

// Messages returns the logged messages in order.
func (r *RecordingSink) Messages() []string {
	out := make([]string, len(r.Lines))
	for i, line := range r.Lines {
		out[i] = line.Message
	}
	return out
}

// Context bundles what checks may consult during one run. Layout, Video and
// Snap are nil when unavailable.
type Context struct {
	Document  *subs.Document
	Neighbors *neighbor.Index
	Layout    *layout.Service
	Video     video.Source
	Snap      *snap.Detector
	Sink      Sink
	Logger    *slog.Logger
}

// NewContext builds the neighbor index from the document's current events.
func NewContext(doc *subs.Document, sink Sink, logger *slog.Logger) *Context {
	if sink == nil {
		sink = SinkFunc(func(Severity, string) {})
	}
	return &Context{
		Document:  doc,
		Neighbors: neighbor.Build(doc.Events),
		Sink:      sink,
		Logger:    logger,
	}
}

// EventCheck inspects events one at a time.
type EventCheck interface {
	RunForEvent(ctx context.Context, ev *subs.Event) iter.Seq[Violation]
}

// DocumentCheck inspects the whole document once.
type DocumentCheck interface {
	Run(ctx context.Context) iter.Seq[Violation]
}

// Disabled returns an error that makes the Runner skip a check quietly
// because something it needs is not configured or not present.
func Disabled(reason string) error {
	return services.Wrap(services.ErrConfiguration, "", "", reason, nil)
}
