package checks

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"strings"

	"sublint/internal/lint"
	"sublint/internal/logging"
	"sublint/internal/spelling"
	"sublint/internal/subs"
)

type spellingCheck struct {
	doc    *subs.Document
	sink   lint.Sink
	deps   Dependencies
	logger *slog.Logger
}

func newSpellingCheck(deps Dependencies) func(*lint.Context) (lint.DocumentCheck, error) {
	return func(lc *lint.Context) (lint.DocumentCheck, error) {
		if deps.OpenDictionary == nil {
			return nil, lint.Disabled("no dictionary loader configured")
		}
		return spellingCheck{
			doc:    lc.Document,
			sink:   lc.Sink,
			deps:   deps,
			logger: checkLogger(lc, NameSpelling),
		}, nil
	}
}

func (c spellingCheck) Run(context.Context) iter.Seq[lint.Violation] {
	return func(func(lint.Violation) bool) {
		if c.doc.Path == "" {
			return
		}
		lang := spellCheckLanguage(c.doc, c.deps.Language)
		if lang == "" {
			c.sink.Log(lint.SeverityWarning, "Spell check was disabled in config.")
			return
		}

		whitelist, blacklist, listPath, err := spelling.LoadCustomLists(c.doc.Path, lang)
		if err != nil {
			c.sink.Log(lint.SeverityError, err.Error())
			return
		}
		if listPath != "" {
			c.logger.Debug("loaded custom word list",
				logging.String("path", listPath),
				logging.Int("whitelist", whitelist.Len()),
				logging.Int("blacklist", blacklist.Len()))
		}
		base, err := c.deps.OpenDictionary(lang)
		if err != nil {
			c.sink.Log(lint.SeverityError, err.Error())
			return
		}
		checker := spelling.Proxy{Base: base, Whitelist: whitelist, Blacklist: blacklist}

		misspelled := newTally()
		lines := make(map[string]map[int]struct{})
		for _, ev := range c.doc.Events {
			if ev.IsKaraoke() {
				continue
			}
			for _, word := range spelling.Words(ev.PlainText()) {
				if checker.Check(word) {
					continue
				}
				if lines[word] == nil {
					lines[word] = make(map[int]struct{})
					misspelled.add(word, 0)
				}
				if _, seen := lines[word][ev.Index]; !seen {
					lines[word][ev.Index] = struct{}{}
					misspelled.add(word, 1)
				}
			}
		}

		if len(misspelled.order) == 0 {
			c.sink.Log(lint.SeverityInfo, "No misspelled words")
			return
		}
		c.sink.Log(lint.SeverityInfo, "Misspelled words:")
		for _, word := range misspelled.byCount() {
			c.sink.Log(lint.SeverityWarning, fmt.Sprintf("- %s: %s", word, formatLineNumbers(lines[word])))
		}
	}
}

func formatLineNumbers(indices map[int]struct{}) string {
	sorted := make([]int, 0, len(indices))
	for index := range indices {
		sorted = append(sorted, index)
	}
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, index := range sorted {
		parts[i] = fmt.Sprintf("#%d", index+1)
	}
	return strings.Join(parts, ", ")
}
