package checks

import (
	"context"
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"sublint/internal/lint"
	"sublint/internal/subs"
)

const (
	enDash = "–"
	emDash = "—"
)

var (
	whitespaceAroundBreak = regexp.MustCompile(`[^\S\n]\n|\n[^\S\n]`)
	extraWhitespace       = regexp.MustCompile(`\A[^\S\n]|[^\S\n]\z`)
	missingApostrophe     = regexp.MustCompile(`(?i)\b(youve|youre|youll|youd|dont|doesnt|didnt|isnt|arent|wasnt|werent|cant|couldnt|wouldnt|shouldnt|havent|hasnt|hadnt|theyre|theyve|weve|thats|whats|wheres|theres|im|ive)\b`)
	enDashTitle           = regexp.MustCompile(`\A– .* –\z`)
	enDashAtLineEnd       = regexp.MustCompile(`\S–(\n|\z)`)
	speakerTurn           = regexp.MustCompile(`[.!?…] +– `)
	emDashSpacing         = regexp.MustCompile(` —|— \p{Ll}`)
	hyphenatedWord        = regexp.MustCompile(`[\p{L}']+(?:-[\p{L}']+)+`)
	sentenceEndLowercase  = regexp.MustCompile(`[.!?]\s+\p{Ll}`)
	spaceBeforePunct      = regexp.MustCompile(` [,…!.?:;]`)
	breakBeforePunct      = regexp.MustCompile(`\n[,…!.?:;]`)
	missingSpaceAfter     = regexp.MustCompile(`[^\s…][?!.,:;…]\p{L}`)
	extraCommaOrDot       = regexp.MustCompile(`[…,?!:;][,.]`)
)

// punctuationRule inspects plain text and reports a message when it fires.
type punctuationRule func(text string) (string, bool)

var punctuationRules = []punctuationRule{
	ruleExtraLineBreak,
	ruleTooManyLines,
	matchRule(whitespaceAroundBreak, "whitespace around line break"),
	matchRule(extraWhitespace, "extra whitespace"),
	containsRule("  ", "double space"),
	containsRule("...", "bad ellipsis (expected …)"),
	matchRule(missingApostrophe, "missing apostrophe"),
	ruleHyphenDialog,
	ruleEmDashExpected,
	ruleSingleSpeaker,
	matchRule(emDashSpacing, "whitespace around "+emDash),
	ruleStutter,
	ruleLowercaseAfterSentence,
	matchRule(spaceBeforePunct, "whitespace before punctuation"),
	matchRule(breakBeforePunct, "line break before punctuation"),
	ruleMissingSpaceAfter,
	ruleUnrecognizedWhitespace,
	matchRule(extraCommaOrDot, "extra comma or dot"),
}

type punctuationCheck struct{}

func newPunctuationCheck(*lint.Context) (lint.EventCheck, error) {
	return punctuationCheck{}, nil
}

func (punctuationCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		text := ev.PlainText()
		for _, rule := range punctuationRules {
			if message, ok := rule(text); ok {
				if !yield(lint.Warn(message, ev)) {
					return
				}
			}
		}
	}
}

func matchRule(re *regexp.Regexp, message string) punctuationRule {
	return func(text string) (string, bool) {
		return message, re.MatchString(text)
	}
}

func containsRule(needle, message string) punctuationRule {
	return func(text string) (string, bool) {
		return message, strings.Contains(text, needle)
	}
}

func ruleExtraLineBreak(text string) (string, bool) {
	return "extra line break", strings.HasPrefix(text, "\n") || strings.HasSuffix(text, "\n")
}

func ruleTooManyLines(text string) (string, bool) {
	return "three or more lines", strings.Count(text, "\n") >= 2
}

// ruleHyphenDialog flags dialog lines opened with a hyphen or an unpaired
// em dash; dialog dashes are en dashes.
func ruleHyphenDialog(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "-") ||
			(strings.HasPrefix(line, emDash) && !strings.HasSuffix(line, emDash)) {
			return "bad dash (expected " + enDash + ")", true
		}
	}
	return "", false
}

// ruleEmDashExpected flags dashes standing in for an em dash: "--", a line
// ending in an en dash, or a title wrapped in spaced en dashes.
func ruleEmDashExpected(text string) (string, bool) {
	ok := strings.Contains(text, "--") || enDashTitle.MatchString(text) || enDashAtLineEnd.MatchString(text)
	return "bad dash (expected " + emDash + ")", ok
}

func ruleSingleSpeaker(text string) (string, bool) {
	if !strings.HasPrefix(text, enDash) || enDashTitle.MatchString(text) {
		return "", false
	}
	speakers := 1 + len(speakerTurn.FindAllStringIndex(text, -1)) + strings.Count(text, "\n"+enDash)
	return "dialog with just one person", speakers == 1
}

// ruleStutter flags "W-what" style stutters whose repeated part is
// capitalized differently from the word.
func ruleStutter(text string) (string, bool) {
	for _, word := range hyphenatedWord.FindAllString(text, -1) {
		lower := strings.ToLower(word)
		if _, ok := nonStutterWords[lower]; ok {
			continue
		}
		parts := strings.Split(word, "-")
		if _, ok := nonStutterPrefixes[strings.ToLower(parts[0])]; ok {
			continue
		}
		if _, ok := nonStutterSuffixes[strings.ToLower(parts[len(parts)-1])]; ok {
			continue
		}
		first, second := []rune(parts[0]), []rune(parts[1])
		if len(first) == 0 || len(second) == 0 {
			continue
		}
		if unicode.IsUpper(first[0]) && unicode.IsLower(second[0]) &&
			strings.HasPrefix(strings.ToLower(parts[1]), strings.ToLower(parts[0])) {
			return "possibly wrong stutter capitalization", true
		}
	}
	return "", false
}

func ruleLowercaseAfterSentence(text string) (string, bool) {
	for _, loc := range sentenceEndLowercase.FindAllStringIndex(text, -1) {
		if !endsWithWordWithPeriod(text[:loc[0]+1]) {
			return "lowercase letter after sentence end", true
		}
	}
	return "", false
}

func ruleMissingSpaceAfter(text string) (string, bool) {
	for _, loc := range missingSpaceAfter.FindAllStringIndex(text, -1) {
		if !startsWithWordWithPeriod(tokenAt(text, loc[0])) {
			return "missing whitespace after punctuation mark", true
		}
	}
	return "", false
}

// tokenAt returns the whitespace-delimited token containing byte offset pos.
func tokenAt(text string, pos int) string {
	start := 0
	if i := strings.LastIndexFunc(text[:pos], unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(text[i:])
		start = i + size
	}
	end := len(text)
	if i := strings.IndexFunc(text[pos:], unicode.IsSpace); i >= 0 {
		end = pos + i
	}
	return text[start:end]
}

func ruleUnrecognizedWhitespace(text string) (string, bool) {
	for _, r := range text {
		switch r {
		case ' ', '\n', '\u00a0':
			continue
		case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
			return "unrecognized whitespace", true
		}
		if unicode.IsSpace(r) {
			return "unrecognized whitespace", true
		}
	}
	return "", false
}
