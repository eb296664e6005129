package checks

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"sublint/internal/language"
	"sublint/internal/lint"
	"sublint/internal/logging"
	"sublint/internal/subs"
)

type grammarCheck struct {
	grammar Grammar
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]string
}

func newGrammarCheck(deps Dependencies) func(*lint.Context) (lint.EventCheck, error) {
	return func(lc *lint.Context) (lint.EventCheck, error) {
		if deps.Grammar == nil {
			return nil, lint.Disabled("grammar checker is not configured")
		}
		lang := spellCheckLanguage(lc.Document, deps.Language)
		if !language.IsEnglish(lang) {
			return nil, lint.Disabled(fmt.Sprintf("grammar check supports English only, language is %q", lang))
		}
		return &grammarCheck{
			grammar: deps.Grammar,
			logger:  checkLogger(lc, NameGrammar),
			cache:   make(map[string]string),
		}, nil
	}
}

func (c *grammarCheck) RunForEvent(ctx context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		text := strings.ReplaceAll(ev.PlainText(), "\n", " ")
		if text == "" || ev.Comment || ev.IsKaraoke() {
			return
		}
		corrected, ok := c.suggest(ctx, text)
		if ok && corrected != "" && !strings.EqualFold(corrected, text) {
			yield(lint.Warn("suggested change: "+corrected, ev))
		}
	}
}

// suggest returns the cached or freshly requested correction. Failures are
// cached as empty so one broken line is asked about once.
func (c *grammarCheck) suggest(ctx context.Context, text string) (string, bool) {
	c.mu.Lock()
	corrected, hit := c.cache[text]
	c.mu.Unlock()
	if hit {
		return corrected, true
	}

	correction, err := c.grammar.SuggestCorrection(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", false
		}
		logging.WarnWithContext(c.logger, "grammar suggestion failed", "grammar_suggestion_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check grammar.api_key and grammar.base_url"),
			logging.String(logging.FieldImpact, "line skipped by grammar check"),
		)
	}

	c.mu.Lock()
	c.cache[text] = correction.Corrected
	c.mu.Unlock()
	return correction.Corrected, true
}
