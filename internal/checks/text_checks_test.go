package checks

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sublint/internal/lint"
	"sublint/internal/subs"
	"sublint/internal/testsupport"
)

func TestPunctuation(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{`Text\N`, "extra line break"},
		{`\NText`, "extra line break"},
		{`Text\NText\NText`, "three or more lines"},
		{`Text\N Text`, "whitespace around line break"},
		{`Text \NText`, "whitespace around line break"},
		{"Text ", "extra whitespace"},
		{" Text", "extra whitespace"},
		{"Text  text", "double space"},
		{"...", "bad ellipsis (expected …)"},
		{"What youve done", "missing apostrophe"},
		{`- What?\N- No!`, "bad dash (expected –)"},
		{`—What?\N—No!`, "bad dash (expected –)"},
		{"—What?", "bad dash (expected –)"},
		{"– Title –", "bad dash (expected —)"},
		{"—Title—", ""},
		{"—Whatever—…", "bad dash (expected –)"},
		{"- What?", "bad dash (expected –)"},
		{"– What!", "dialog with just one person"},
		{"blabla —", "whitespace around —"},
		{"blabla —blabla", "whitespace around —"},
		{"blabla— blabla", "whitespace around —"},
		{"blabla— Blabla", ""},
		{`– What! – Nothing\Nat all.`, ""},
		{`– What. – Nothing\Nat all.`, ""},
		{`– What? – Nothing\Nat all.`, ""},
		{`– What… – Nothing\Nat all.`, ""},
		{`– What – Nothing\Nat all.`, "dialog with just one person"},
		{`– What.– Nothing\Nat all.`, "dialog with just one person"},
		{`– What: – Nothing\Nat all.`, "dialog with just one person"},
		{`– What!\N– Nothing.`, ""},
		{"What--", "bad dash (expected —)"},
		{"What–", "bad dash (expected —)"},
		{"W-what?", "possibly wrong stutter capitalization"},
		{"Ta-da!", ""},
		{"Peek-a-boo!", ""},
		{"Ayuhara-san", ""},
		{"What! what…", "lowercase letter after sentence end"},
		{"What. what…", "lowercase letter after sentence end"},
		{"Japan vs. the world", ""},
		{"Japan vss. the world", "lowercase letter after sentence end"},
		{"Elvs. the world", ""},
		{"What? what…", "lowercase letter after sentence end"},
		{"What , no.", "whitespace before punctuation"},
		{"What …", "whitespace before punctuation"},
		{"What !", "whitespace before punctuation"},
		{"What .", "whitespace before punctuation"},
		{"What ?", "whitespace before punctuation"},
		{"What :", "whitespace before punctuation"},
		{"What ;", "whitespace before punctuation"},
		{`What\N, no.`, "line break before punctuation"},
		{`What\N…no.`, "line break before punctuation"},
		{`What\N!`, "line break before punctuation"},
		{`What\N.`, "line break before punctuation"},
		{`What\N?`, "line break before punctuation"},
		{`What\N:`, "line break before punctuation"},
		{`What\N;`, "line break before punctuation"},
		{"What?No!", "missing whitespace after punctuation mark"},
		{"What!No!", "missing whitespace after punctuation mark"},
		{"What.No!", "missing whitespace after punctuation mark"},
		{"What,no!", "missing whitespace after punctuation mark"},
		{"What:no!", "missing whitespace after punctuation mark"},
		{"What;no!", "missing whitespace after punctuation mark"},
		{"What…no!", "missing whitespace after punctuation mark"},
		{"He is a.k.a. Bob.", ""},
		{"What? No!", ""},
		{"What! No!", ""},
		{"What. No!", ""},
		{"What, no!", ""},
		{"What: no!", ""},
		{"What; no!", ""},
		{"What… no!", ""},
		{`What?\NNo!`, ""},
		{`What!\NNo!`, ""},
		{`What.\NNo!`, ""},
		{`What,\Nno!`, ""},
		{`What:\Nno!`, ""},
		{`What;\Nno!`, ""},
		{`What…\Nno!`, ""},
		{"test\ttest", "unrecognized whitespace"},
		{"test​test", "unrecognized whitespace"},
		{"test test", ""},
		{"….", "extra comma or dot"},
		{",.", "extra comma or dot"},
		{"?.", "extra comma or dot"},
		{"!.", "extra comma or dot"},
		{":.", "extra comma or dot"},
		{";.", "extra comma or dot"},
		{"…,", "extra comma or dot"},
		{",,", "extra comma or dot"},
		{"?,", "extra comma or dot"},
		{"!,", "extra comma or dot"},
		{":,", "extra comma or dot"},
		{";,", "extra comma or dot"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := messages(runEvent(t, newPunctuationCheck, singleEvent(tc.text), 0))
			if tc.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, []string{tc.want}, got)
		})
	}
}

func TestQuotes(t *testing.T) {
	type result struct {
		pattern  string
		severity lint.Severity
	}
	plain := result{"plain quotation mark", lint.SeverityInfo}
	partial := result{"partial quote", lint.SeverityInfo}
	insideDebug := result{".*inside.*marks", lint.SeverityDebug}
	insideWarn := result{".*inside.*marks", lint.SeverityWarning}
	outside := result{".*outside.*", lint.SeverityDebug}

	cases := []struct {
		text string
		want []result
	}{
		{"„What…", []result{partial}},
		{"…what.”", []result{partial}},
		{"„What.”", []result{insideDebug}},
		{"„What”.", []result{outside}},
		{"„What”, he said.", []result{outside}},
		{"„What.” he said.", []result{insideDebug}},
		{"„What!” he said.", []result{insideDebug}},
		{"„What?” he said.", []result{insideDebug}},
		{"„What…” he said.", []result{insideDebug}},
		{"„What,” he said.", []result{insideWarn}},
		{"He said „what.”", []result{insideWarn}},
		{"He said „what!”", []result{insideWarn}},
		{"He said „what?”", []result{insideWarn}},
		{"He said „what…”", []result{insideWarn}},
		{`"What"`, []result{plain}},
		{`"What…`, []result{plain, partial}},
		{`…what."`, []result{plain, partial}},
		{`"What."`, []result{plain, insideDebug}},
		{`"What".`, []result{plain, outside}},
		{`"What", he said.`, []result{plain, outside}},
		{`"What." he said.`, []result{plain, insideDebug}},
		{`"What!" he said.`, []result{plain, insideDebug}},
		{`"What?" he said.`, []result{plain, insideDebug}},
		{`"What…" he said.`, []result{plain, insideDebug}},
		{`"What," he said.`, []result{plain, insideWarn}},
		{`He said "what."`, []result{plain, insideWarn}},
		{`He said "what!"`, []result{plain, insideWarn}},
		{`He said "what?"`, []result{plain, insideWarn}},
		{`He said "what…"`, []result{plain, insideWarn}},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := runEvent(t, newQuotesCheck, singleEvent(tc.text), 0)
			require.Len(t, got, len(tc.want))
			for i, want := range tc.want {
				assert.Regexp(t, regexp.MustCompile("^"+want.pattern), got[i].Message)
				assert.Equal(t, want.severity, got[i].Severity)
			}
		})
	}
}

func TestLineContinuation(t *testing.T) {
	cases := []struct {
		texts []string
		want  string
	}{
		{[]string{"Whatever…"}, ""},
		{[]string{"Whatever…", "I don't care."}, ""},
		{[]string{"…okay."}, ""},
		{[]string{"Whatever…", "…you say."}, "old-style line continuation"},
		{[]string{"Whatever", "you say."}, ""},
		{[]string{"Whatever,", "we don't care."}, ""},
		{[]string{"Whatever:", "we don't care."}, ""},
		{[]string{"whatever."}, "sentence begins with a lowercase letter"},
		{[]string{"Whatever.", "whatever."}, "sentence begins with a lowercase letter"},
		{[]string{"Whatever,", "whatever."}, ""},
		{[]string{"Whatever i18n ąćę", "whatever."}, ""},
		{[]string{"Whatever"}, "possibly unended sentence"},
		{[]string{"Whatever", "Whatever."}, "possibly unended sentence"},
		{[]string{"Whatever,", "I have."}, ""},
		{[]string{"Whatever,", "I'm going."}, ""},
		{[]string{"Whatever,", "I'd go."}, ""},
		{[]string{"Whatever,", "I'll go."}, ""},
		{[]string{"Whatever,", "Not."}, "possibly unended sentence"},
		{[]string{"Whatever,", "żółć."}, ""},
		{[]string{"Whatever,", `"Not."`}, ""},
		{[]string{"Whatever,", "„Not.”"}, ""},
		{[]string{"Whatever,", "“Not.”"}, ""},
		{[]string{"Japan vs.", "the rest."}, ""},
		{[]string{"Japan vss.", "the rest."}, "sentence begins with a lowercase letter"},
		{[]string{"Elvs.", "the rest."}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.texts[len(tc.texts)-1], func(t *testing.T) {
			got := messages(runAll(t, newLineContinuationCheck, testsupport.NewDocument(tc.texts...)))
			if tc.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, []string{tc.want}, got)
		})
	}
}

func TestLineContinuationCoversBothEvents(t *testing.T) {
	doc := testsupport.NewDocument("Whatever…", "…you say.")
	got := runEvent(t, newLineContinuationCheck, doc, 0)
	require.Len(t, got, 1)
	assert.Equal(t, "#1+#2: old-style line continuation", got[0].String())
}

func TestLineContinuationIgnoresSigns(t *testing.T) {
	doc := testsupport.NewDocument("Entrance", "exit")
	doc.Events[0].Actor = "[sign]"
	doc.Events[1].Actor = "sign"
	assert.Empty(t, runAll(t, newLineContinuationCheck, doc))
}

func TestDoubleWords(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"text", nil},
		{"text text", []string{"double word (text)"}},
		{"text{} text", []string{"double word (text)"}},
		{`text{}\Ntext`, []string{"double word (text)"}},
		{"text{}text", nil},
		{"Text text", nil},
		{"the the the", []string{"double word (the)"}},
		{"to to be be", []string{"double word (to)", "double word (be)"}},
		{"tak tak, nie", []string{"double word (tak)"}},
		{"ha, ha", nil},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := messages(runEvent(t, newDoubleWordsCheck, singleEvent(tc.text), 0))
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAssTags(t *testing.T) {
	cases := []struct {
		text    string
		pattern string
	}{
		{"text", ""},
		{`{\an8}`, ""},
		{`text{\b1}text`, ""},
		{`{\fsherp}`, `^invalid syntax \(.*\)$`},
		{"{}", "^pointless tag$"},
		{`{\\comment}`, "^use notes to make comments$"},
		{`{\comment}`, `^invalid syntax \(.*\)$`},
		{`{\a5}`, "^using legacy alignment tag$"},
		{`{\an8comment}`, `^invalid syntax \(.*\)$`},
		{`{comment\an8}`, "^use notes to make comments$"},
		{`{\k20}{\k20}`, ""},
		{`{\an8}{\fs5}`, "^disjointed tags$"},
		{`{\an8`, `^invalid syntax \(.*\)$`},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got := messages(runEvent(t, newAssTagsCheck, singleEvent(tc.text), 0))
			if tc.pattern == "" {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Regexp(t, tc.pattern, got[0])
		})
	}
}

func TestDurations(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		doc := timedDocument(subs.NewEvent(0, 100, ""))
		assert.Empty(t, runEvent(t, newDurationsCheck, doc, 0))
	})
	t.Run("comment", func(t *testing.T) {
		doc := timedDocument(comment(subs.NewEvent(0, 100, "test")))
		assert.Empty(t, runEvent(t, newDurationsCheck, doc, 0))
	})
	t.Run("too short", func(t *testing.T) {
		doc := timedDocument(subs.NewEvent(0, 100, "test"))
		assert.Equal(t, []string{"duration shorter than 250 ms"}, messages(runEvent(t, newDurationsCheck, doc, 0)))
	})
	t.Run("too short long text", func(t *testing.T) {
		doc := timedDocument(subs.NewEvent(0, 100, "test test test test test"))
		assert.Equal(t, []string{"duration shorter than 500 ms"}, messages(runEvent(t, newDurationsCheck, doc, 0)))
	})
	t.Run("good duration", func(t *testing.T) {
		doc := timedDocument(subs.NewEvent(0, 501, "test test test test test"))
		assert.Empty(t, runEvent(t, newDurationsCheck, doc, 0))
	})
	t.Run("too short gap", func(t *testing.T) {
		doc := timedDocument(subs.NewEvent(0, 500, "test"), subs.NewEvent(600, 900, "test"))
		assert.Equal(t, []string{"gap shorter than 250 ms (100 ms)"}, messages(runEvent(t, newDurationsCheck, doc, 0)))
	})
	t.Run("gap across empty line", func(t *testing.T) {
		doc := timedDocument(
			subs.NewEvent(0, 500, "test"),
			subs.NewEvent(550, 550, ""),
			subs.NewEvent(600, 900, "test"),
		)
		assert.Equal(t, []string{"gap shorter than 250 ms (100 ms)"}, messages(runEvent(t, newDurationsCheck, doc, 0)))
	})
	t.Run("gap across comment", func(t *testing.T) {
		doc := timedDocument(
			subs.NewEvent(0, 500, "test"),
			comment(subs.NewEvent(550, 550, "test")),
			subs.NewEvent(600, 900, "test"),
		)
		assert.Equal(t, []string{"gap shorter than 250 ms (100 ms)"}, messages(runEvent(t, newDurationsCheck, doc, 0)))
	})
	t.Run("good gap", func(t *testing.T) {
		doc := timedDocument(subs.NewEvent(0, 500, "test"), subs.NewEvent(750, 900, "test"))
		assert.Empty(t, runEvent(t, newDurationsCheck, doc, 0))
	})
	t.Run("karaoke", func(t *testing.T) {
		ev := subs.NewEvent(0, 100, "la la la")
		ev.Actor = "karaoke"
		assert.Empty(t, runEvent(t, newDurationsCheck, timedDocument(ev), 0))
	})
}

func TestStyleValidity(t *testing.T) {
	known := subs.NewEvent(0, 1000, "a")
	unknown := subs.NewEvent(0, 1000, "b")
	unknown.Style = "Signs"
	pseudo := comment(subs.NewEvent(0, 1000, "c"))
	pseudo.Style = "[Notes]"
	bracketedDialog := subs.NewEvent(0, 1000, "d")
	bracketedDialog.Style = "[Notes]"
	doc := timedDocument(known, unknown, pseudo, bracketedDialog)

	got := runAll(t, newStyleValidityCheck, doc)
	require.Len(t, got, 2)
	assert.Equal(t, "#2: using non-existing style", got[0].String())
	assert.Equal(t, "#4: using non-existing style", got[1].String())
}
