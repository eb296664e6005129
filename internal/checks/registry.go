package checks

import (
	"context"
	"log/slog"

	"sublint/internal/lint"
	"sublint/internal/logging"
	"sublint/internal/services/llm"
	"sublint/internal/spelling"
	"sublint/internal/subs"
)

// Check names as used in config opt-outs and report output.
const (
	NameGrammar           = "grammar"
	NameStyleValidity     = "style_validity"
	NameAssTags           = "ass_tags"
	NameDurations         = "durations"
	NamePunctuation       = "punctuation"
	NameQuotes            = "quotes"
	NameLineContinuation  = "line_continuation"
	NameDoubleWords       = "double_words"
	NameUnnecessaryBreaks = "unnecessary_breaks"
	NameLongLines         = "long_lines"
	NameTiming            = "timing"
	NameVideoResolution   = "video_resolution"
	NameSpelling          = "spelling"
	NameActorStats        = "actor_stats"
	NameStyleStats        = "style_stats"
	NameFonts             = "fonts"
	NamePunctuationStats  = "punctuation_stats"
)

// Grammar suggests corrected wording for a line of text.
type Grammar interface {
	SuggestCorrection(ctx context.Context, text string) (llm.Correction, error)
}

// FontLookup reports whether a font family is installed.
type FontLookup interface {
	Has(ctx context.Context, family string) (bool, error)
}

// Dependencies carries the collaborators checks need beyond the lint
// Context. Nil fields disable the checks that use them.
type Dependencies struct {
	Grammar Grammar
	Fonts   FontLookup
	// Language is the spell check language used when the document has none.
	Language string
	// OpenDictionary loads the base spell checker for a language.
	OpenDictionary func(lang string) (spelling.Checker, error)
}

// DefaultRegistry lists every check in reporting order. It panics if the
// list itself is malformed.
func DefaultRegistry(deps Dependencies) *lint.Registry {
	registry, err := lint.NewRegistry(
		lint.EventEntry(NameGrammar, lint.TierExpensive, newGrammarCheck(deps)),
		lint.EventEntry(NameStyleValidity, lint.TierCheap, newStyleValidityCheck),
		lint.EventEntry(NameAssTags, lint.TierCheap, newAssTagsCheck),
		lint.EventEntry(NameDurations, lint.TierCheap, newDurationsCheck),
		lint.EventEntry(NamePunctuation, lint.TierCheap, newPunctuationCheck),
		lint.EventEntry(NameQuotes, lint.TierCheap, newQuotesCheck),
		lint.EventEntry(NameLineContinuation, lint.TierCheap, newLineContinuationCheck),
		lint.EventEntry(NameDoubleWords, lint.TierCheap, newDoubleWordsCheck),
		lint.EventEntry(NameUnnecessaryBreaks, lint.TierCheap, newUnnecessaryBreaksCheck),
		lint.EventEntry(NameLongLines, lint.TierCheap, newLongLinesCheck),
		lint.EventEntry(NameTiming, lint.TierExpensive, newTimingCheck),
		lint.DocumentEntry(NameVideoResolution, lint.TierCheap, newVideoResolutionCheck),
		lint.DocumentEntry(NameSpelling, lint.TierCheap, newSpellingCheck(deps)),
		lint.DocumentEntry(NameActorStats, lint.TierCheap, newActorStatsCheck),
		lint.DocumentEntry(NameStyleStats, lint.TierCheap, newStyleStatsCheck),
		lint.DocumentEntry(NameFonts, lint.TierCheap, newFontsCheck(deps)),
		lint.DocumentEntry(NamePunctuationStats, lint.TierCheap, newPunctuationStatsCheck),
	)
	if err != nil {
		panic(err)
	}
	return registry
}

// spellCheckLanguage prefers the language the document declares.
func spellCheckLanguage(doc *subs.Document, fallback string) string {
	if lang := doc.Language(); lang != "" {
		return lang
	}
	return fallback
}

func checkLogger(lc *lint.Context, name string) *slog.Logger {
	return logging.NewComponentLogger(lc.Logger, name)
}
