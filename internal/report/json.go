package report

import (
	"encoding/json"
	"io"
	"sync"

	"sublint/internal/lint"
)

// Result is the JSON shape of one violation.
type Result struct {
	Check    string        `json:"check"`
	Severity lint.Severity `json:"severity"`
	Events   []int         `json:"events"`
	Message  string        `json:"message"`
}

// LogLine is the JSON shape of a check log line.
type LogLine struct {
	Severity lint.Severity `json:"severity"`
	Message  string        `json:"message"`
}

// Document is the complete JSON report.
type Document struct {
	Subtitles string         `json:"subtitles"`
	Video     string         `json:"video,omitempty"`
	RunID     string         `json:"run_id,omitempty"`
	Results   []Result       `json:"results"`
	Log       []LogLine      `json:"log"`
	Summary   map[string]int `json:"summary"`
}

// Collector buffers violations and log lines for a JSON report. Its Log
// method receives only the lines checks write directly; violations are
// added with Add.
type Collector struct {
	mu         sync.Mutex
	violations []lint.Violation
	lines      []LogLine
}

// Log implements lint.Sink.
func (c *Collector) Log(severity lint.Severity, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, LogLine{Severity: severity, Message: message})
}

// Add records a violation.
func (c *Collector) Add(v lint.Violation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.violations = append(c.violations, v)
}

// Violations returns the recorded violations in arrival order.
func (c *Collector) Violations() []lint.Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]lint.Violation(nil), c.violations...)
}

// Document assembles the report. Event numbers are 1-based.
func (c *Collector) Document(subtitles, video, runID string) Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc := Document{
		Subtitles: subtitles,
		Video:     video,
		RunID:     runID,
		Results:   make([]Result, 0, len(c.violations)),
		Log:       append([]LogLine{}, c.lines...),
	}
	for _, v := range c.violations {
		result := Result{Check: v.Check, Severity: v.Severity, Message: v.Message}
		for _, ev := range v.Events() {
			result.Events = append(result.Events, ev.Index+1)
		}
		doc.Results = append(doc.Results, result)
	}
	summary := lint.Tally(c.violations)
	doc.Summary = map[string]int{
		"debug":   summary.Debug,
		"info":    summary.Info,
		"warning": summary.Warnings,
		"error":   summary.Errors,
	}
	return doc
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
