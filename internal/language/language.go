package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// wordForms maps spelled-out names and bibliographic ISO 639-2 codes that the
// tag parser does not accept.
var wordForms = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"polish":     "pl",
	"russian":    "ru",
	"dutch":      "nl",
	"fre":        "fr",
	"ger":        "de",
	"chi":        "zh",
	"dut":        "nl",
}

// Parse converts a language setting such as "en_US", "pl-PL", "eng" or
// "english" to a BCP 47 tag.
func Parse(code string) (language.Tag, error) {
	cleaned := strings.TrimSpace(code)
	if mapped, ok := wordForms[strings.ToLower(cleaned)]; ok {
		cleaned = mapped
	}
	return language.Parse(strings.ReplaceAll(cleaned, "_", "-"))
}

// Short strips the region or script suffix: "en_US" and "en-GB" become "en".
// The input is otherwise left as written.
func Short(code string) string {
	code = strings.TrimSpace(code)
	if idx := strings.IndexAny(code, "-_"); idx >= 0 {
		return code[:idx]
	}
	return code
}

// Base returns the ISO 639-1 base of code, or "" when it does not parse.
func Base(code string) string {
	tag, err := Parse(code)
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}

// IsEnglish reports whether code names any English variant.
func IsEnglish(code string) bool {
	return Base(code) == "en"
}

// DisplayName returns the English name of the language, or the code itself
// when it does not parse.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	tag, err := Parse(code)
	if err != nil {
		return strings.TrimSpace(code)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return tag.String()
}

// Variants lists spellings to try when looking up per-language files for
// code, most specific first: "en_US" yields en_US, en-US, en.
func Variants(code string) []string {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	out := []string{code}
	add := func(v string) {
		for _, existing := range out {
			if existing == v {
				return
			}
		}
		out = append(out, v)
	}
	add(strings.ReplaceAll(code, "-", "_"))
	add(strings.ReplaceAll(code, "_", "-"))
	if base := Base(code); base != "" {
		add(base)
	}
	add(Short(code))
	return out
}
