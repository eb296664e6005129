package lint

import (
	"strings"

	"sublint/internal/subs"
)

// Violation is a single check result attached to one or more events.
type Violation struct {
	Severity   Severity
	Event      *subs.Event
	Additional []*subs.Event
	Message    string
	// Check names the producing check; the Runner fills it in.
	Check string
}

// Warn builds a Warning-level violation.
func Warn(message string, ev *subs.Event, more ...*subs.Event) Violation {
	return Violation{Severity: SeverityWarning, Event: ev, Additional: more, Message: message}
}

// Info builds an Info-level result.
func Info(message string, ev *subs.Event, more ...*subs.Event) Violation {
	return Violation{Severity: SeverityInfo, Event: ev, Additional: more, Message: message}
}

// Debug builds a Debug-level result.
func Debug(message string, ev *subs.Event, more ...*subs.Event) Violation {
	return Violation{Severity: SeverityDebug, Event: ev, Additional: more, Message: message}
}

// Events returns the primary event followed by the additional ones.
func (v Violation) Events() []*subs.Event {
	out := make([]*subs.Event, 0, 1+len(v.Additional))
	out = append(out, v.Event)
	return append(out, v.Additional...)
}

// EventIndex returns the primary event's index, or -1.
func (v Violation) EventIndex() int {
	if v.Event == nil {
		return -1
	}
	return v.Event.Index
}

// String renders "#<n>[+#<n>...]: <message>" with 1-based numbers.
func (v Violation) String() string {
	var b strings.Builder
	for i, ev := range v.Events() {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteByte('#')
		b.WriteString(ev.Number())
	}
	b.WriteString(": ")
	b.WriteString(v.Message)
	return b.String()
}
