package checks

import (
	"slices"
	"strings"
	"unicode"
)

// wordsWithPeriod are abbreviations whose trailing period does not end a
// sentence.
var wordsWithPeriod = []string{"vs.", "Mrs.", "Mr.", "Jr.", "U.F.O.", "a.k.a."}

var nonStutterPrefixes = map[string]struct{}{"half": {}, "well": {}}

var nonStutterSuffixes = map[string]struct{}{
	"kun": {}, "san": {}, "chan": {}, "smaa": {}, "senpai": {}, "sensei": {},
}

var nonStutterWords = map[string]struct{}{
	"bye-bye": {}, "easy-peasy": {}, "heh-heh": {}, "one-two": {}, "part-time": {},
	"peek-a-boo": {}, "ta-da": {}, "ta-dah": {}, "uh-huh": {}, "uh-oh": {},
}

// endsWithWordWithPeriod reports whether text ends with an abbreviation
// such as "vs.". Any suffix match counts, so "Elvs." also qualifies.
func endsWithWordWithPeriod(text string) bool {
	return slices.ContainsFunc(wordsWithPeriod, func(word string) bool {
		return strings.HasSuffix(text, word)
	})
}

// startsWithWordWithPeriod reports whether token begins with an
// abbreviation such as "a.k.a.".
func startsWithWordWithPeriod(token string) bool {
	token = strings.TrimLeftFunc(token, func(r rune) bool { return !isWordRune(r) })
	for _, word := range wordsWithPeriod {
		if strings.HasPrefix(token, word) {
			return true
		}
	}
	return false
}

// isWordRune matches the \w class of Unicode-aware regex engines.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

type wordSpan struct {
	word       string
	start, end int
}

// wordSpans splits text into maximal runs of word runes with byte offsets.
func wordSpans(text string) []wordSpan {
	var out []wordSpan
	start := -1
	for i, r := range text {
		switch {
		case isWordRune(r) && start < 0:
			start = i
		case !isWordRune(r) && start >= 0:
			out = append(out, wordSpan{word: text[start:i], start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, wordSpan{word: text[start:], start: start, end: len(text)})
	}
	return out
}

// isBlank reports whether s is non-empty and only whitespace.
func isBlank(s string) bool {
	return s != "" && strings.TrimFunc(s, unicode.IsSpace) == ""
}
