package spelling

import (
	"strings"
	"unicode"
)

// Words splits plain text into spell-checkable words. Apostrophes inside a
// word are kept; tokens with digits are dropped.
func Words(text string) []string {
	var out []string
	var current []rune
	flush := func() {
		word := strings.Trim(string(current), "'’")
		current = current[:0]
		if word == "" || strings.IndexFunc(word, unicode.IsDigit) >= 0 {
			return
		}
		out = append(out, word)
	}
	for _, r := range text {
		switch {
		case unicode.IsLetter(r), unicode.IsMark(r), unicode.IsDigit(r), r == '\'', r == '’':
			current = append(current, r)
		default:
			flush()
		}
	}
	flush()
	return out
}
