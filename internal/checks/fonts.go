package checks

import (
	"context"
	"fmt"
	"iter"

	"sublint/internal/asstag"
	"sublint/internal/fonts"
	"sublint/internal/lint"
	"sublint/internal/logging"
	"sublint/internal/services"
	"sublint/internal/subs"
)

type fontsCheck struct {
	lc     *lint.Context
	lookup FontLookup
}

func newFontsCheck(deps Dependencies) func(*lint.Context) (lint.DocumentCheck, error) {
	return func(lc *lint.Context) (lint.DocumentCheck, error) {
		if deps.Fonts == nil {
			return nil, lint.Disabled("font lookup is not configured")
		}
		return fontsCheck{lc: lc, lookup: deps.Fonts}, nil
	}
}

// usedFonts counts, per font family, the non-comment events rendering with
// it through their style or a \fn override.
func usedFonts(doc *subs.Document) (*tally, map[string]string) {
	counts := newTally()
	names := make(map[string]string)
	for _, ev := range doc.Events {
		if ev.Comment {
			continue
		}
		seen := make(map[string]struct{})
		families := asstag.FontNames(ev.Text)
		if style, ok := doc.Styles.Get(ev.Style); ok {
			families = append([]string{style.FontName}, families...)
		}
		for _, family := range families {
			key := fonts.Key(family)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if _, ok := names[key]; !ok {
				names[key] = fonts.FamilyName(family)
			}
			counts.add(key, 1)
		}
	}
	return counts, names
}

func (c fontsCheck) Run(ctx context.Context) iter.Seq[lint.Violation] {
	return func(func(lint.Violation) bool) {
		counts, names := usedFonts(c.lc.Document)
		var missing []string
		for _, key := range counts.byCount() {
			ok, err := c.lookup.Has(ctx, names[key])
			if err != nil {
				logger := checkLogger(c.lc, NameFonts)
				if services.IsUnavailable(err) {
					logger.Info("font lookup unavailable", logging.Error(err))
				} else {
					logging.WarnWithContext(logger, "font lookup failed", "font_lookup_failed", logging.Error(err))
				}
				c.lc.Sink.Log(lint.SeverityError, fmt.Sprintf("Could not list installed fonts: %v", err))
				return
			}
			if !ok {
				missing = append(missing, key)
			}
		}

		if len(missing) == 0 {
			c.lc.Sink.Log(lint.SeverityInfo, "All fonts are installed")
			return
		}
		c.lc.Sink.Log(lint.SeverityInfo, "Missing fonts:")
		for _, key := range missing {
			c.lc.Sink.Log(lint.SeverityWarning, fmt.Sprintf("- %s: used in %d line(s)", names[key], counts.counts[key]))
		}
	}
}
