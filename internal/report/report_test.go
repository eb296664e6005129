package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " json ": FormatJSON} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; want %q", input, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestTextSinkPlain(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf, false)
	sink.Log(lint.SeverityWarning, "#1: double space")
	sink.Log(lint.SeverityInfo, "Actors summary:")

	want := "[warning] #1: double space\n[info] Actors summary:\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if sink.Count(lint.SeverityWarning) != 1 || sink.Count(lint.SeverityError) != 0 {
		t.Fatalf("unexpected counts")
	}
}

func TestTextSinkColor(t *testing.T) {
	var buf bytes.Buffer
	NewTextSink(&buf, true).Log(lint.SeverityError, "Unknown video width.")
	out := buf.String()
	if !strings.Contains(out, "[error]") {
		t.Fatalf("expected severity label in %q", out)
	}
	if !strings.HasSuffix(out, " Unknown video width.\n") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestCollectorDocument(t *testing.T) {
	first := subs.NewEvent(0, 1000, "a")
	second := subs.NewEvent(1000, 2000, "b")
	first.Index, second.Index = 0, 1

	var c Collector
	v := lint.Warn("old-style line continuation", first, second)
	v.Check = "line_continuation"
	c.Add(v)
	c.Log(lint.SeverityInfo, "No misspelled words")

	var buf bytes.Buffer
	if err := WriteJSON(&buf, c.Document("ep.ass", "", "run-1")); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded struct {
		Subtitles string `json:"subtitles"`
		RunID     string `json:"run_id"`
		Results   []struct {
			Check    string `json:"check"`
			Severity string `json:"severity"`
			Events   []int  `json:"events"`
		} `json:"results"`
		Log     []map[string]string `json:"log"`
		Summary map[string]int      `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Subtitles != "ep.ass" || decoded.RunID != "run-1" {
		t.Fatalf("unexpected header %+v", decoded)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].Severity != "warning" {
		t.Fatalf("unexpected results %+v", decoded.Results)
	}
	if got := decoded.Results[0].Events; len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected event numbers %v", got)
	}
	if len(decoded.Log) != 1 || decoded.Log[0]["message"] != "No misspelled words" {
		t.Fatalf("unexpected log %+v", decoded.Log)
	}
	if decoded.Summary["warning"] != 1 {
		t.Fatalf("unexpected summary %+v", decoded.Summary)
	}
}

func TestSummaryTable(t *testing.T) {
	summary := lint.Summary{Warnings: 3, Info: 1, ByCheck: map[string]int{"punctuation": 3, "quotes": 1}}
	out := SummaryTable([]string{"punctuation", "quotes", "durations"}, summary)
	for _, want := range []string{"punctuation", "quotes", "durations", "Total", "warnings"} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(want)) {
			t.Fatalf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestTablePadsShortRows(t *testing.T) {
	out := Table([]string{"Dependency", "Available", "Detail"}, [][]string{{"FFmpeg", "yes"}}, 2)
	if !strings.Contains(out, "FFmpeg") || !strings.Contains(strings.ToLower(out), "dependency") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if Table(nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}
