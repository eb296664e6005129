package subs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sublint/internal/subs"
)

const sampleASS = `[Script Info]
ScriptType: v4.00+
PlayResX: 1280
PlayResY: 720
WrapStyle: 0
Language: en_US

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,Open Sans,48,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,-1,0,0,0,100,100,0,0,1,2,1,2,40,40,30,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.50,Default,,0,0,0,,Hello, world{\i1}!{\i0}
Comment: 0,0:00:03.00,0:00:04.00,Default,[karaoke],0,0,0,,la la\Nla
`

func TestParseASS(t *testing.T) {
	doc, err := subs.ParseASS(strings.NewReader(sampleASS))
	if err != nil {
		t.Fatalf("ParseASS returned error: %v", err)
	}
	if doc.PlayResX() != 1280 || doc.PlayResY() != 720 {
		t.Fatalf("unexpected resolution %dx%d", doc.PlayResX(), doc.PlayResY())
	}
	if doc.AspectRatio() != subs.Aspect16x9 {
		t.Fatalf("expected 16:9, got %s", doc.AspectRatio())
	}
	if doc.Language() != "en_US" {
		t.Fatalf("unexpected language %q", doc.Language())
	}
	style, ok := doc.Styles.Get("Default")
	if !ok {
		t.Fatal("expected Default style")
	}
	if style.FontName != "Open Sans" || style.FontSize != 48 || !style.Bold || style.MarginV != 30 {
		t.Fatalf("unexpected style %+v", style)
	}
	if len(doc.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(doc.Events))
	}
	first := doc.Events[0]
	if first.Start != 1000 || first.End != 2500 || first.Duration() != 1500 {
		t.Fatalf("unexpected timing %d-%d", first.Start, first.End)
	}
	if first.Text != `Hello, world{\i1}!{\i0}` {
		t.Fatalf("text with commas must be preserved, got %q", first.Text)
	}
	if first.PlainText() != "Hello, world!" {
		t.Fatalf("unexpected plaintext %q", first.PlainText())
	}
	if first.Number() != "1" {
		t.Fatalf("unexpected number %q", first.Number())
	}
	second := doc.Events[1]
	if !second.Comment || !second.IsKaraoke() || second.IsDialog() {
		t.Fatalf("expected karaoke comment, got %+v", second)
	}
	if second.HasContent() {
		t.Fatal("comments never carry content")
	}
}

func TestPlainText(t *testing.T) {
	cases := map[string]string{
		`text`:              "text",
		`text{} text`:       "text text",
		`text{}\Ntext`:      "text\ntext",
		`a\nb`:              "a\nb",
		`{\an8}top`:         "top",
		`non\hbreaking`:     "non\u00a0breaking",
		`{comment}`:         "",
		`back\\slash`:       `back\\slash`,
		`unterminated{\b1`:  "unterminated",
	}
	for input, want := range cases {
		if got := subs.PlainText(input); got != want {
			t.Errorf("PlainText(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEventNumberUnassigned(t *testing.T) {
	ev := subs.NewEvent(0, 100, "x")
	if ev.Number() != "?" {
		t.Fatalf("expected ?, got %q", ev.Number())
	}
}

func TestActorClassification(t *testing.T) {
	cases := []struct {
		actor  string
		dialog bool
	}{
		{"", true},
		{"Alice", true},
		{"[sign]", false},
		{"(episode title)", false},
		{"series title", false},
		{"[title]", false},
		{"karaoke", false},
		{"[credits]", false},
	}
	for _, tc := range cases {
		ev := subs.NewEvent(0, 1, "x")
		ev.Actor = tc.actor
		if ev.IsDialog() != tc.dialog {
			t.Errorf("actor %q: dialog=%v, want %v", tc.actor, ev.IsDialog(), tc.dialog)
		}
	}
	if subs.StripBrackets("[(sign)]") != "sign" {
		t.Fatal("expected brackets stripped")
	}
}

func TestClassifyAspectRatio(t *testing.T) {
	cases := []struct {
		w, h int
		want subs.AspectRatio
	}{
		{640, 480, subs.Aspect4x3},
		{1920, 1080, subs.Aspect16x9},
		{1280, 700, subs.Aspect16x9},
		{1000, 1000, subs.AspectUnknown},
		{0, 720, subs.AspectUnknown},
	}
	for _, tc := range cases {
		if got := subs.ClassifyAspectRatio(tc.w, tc.h); got != tc.want {
			t.Errorf("%dx%d: got %s, want %s", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestLoadSRT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ep.srt")
	body := "1\r\n00:00:01,000 --> 00:00:02,000\r\n<i>Hello</i>\r\nthere\r\n\r\n2\r\n00:00:03.500 --> 00:00:04,000 X1:10\r\n<font color=\"red\">Bye</font>\r\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}
	doc, err := subs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(doc.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(doc.Events))
	}
	if doc.Events[0].Text != `{\i1}Hello{\i0}\Nthere` {
		t.Fatalf("unexpected text %q", doc.Events[0].Text)
	}
	if doc.Events[1].Start != 3500 || doc.Events[1].Text != "Bye" {
		t.Fatalf("unexpected second event %+v", doc.Events[1])
	}
	if doc.Events[1].Index != 1 {
		t.Fatalf("expected reindexed events, got %d", doc.Events[1].Index)
	}
	if doc.Path != path {
		t.Fatalf("expected absolute path %q, got %q", path, doc.Path)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hi"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := subs.Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
