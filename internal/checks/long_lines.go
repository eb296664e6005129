package checks

import (
	"context"
	"fmt"
	"iter"
	"math"

	"sublint/internal/layout"
	"sublint/internal/lint"
	"sublint/internal/subs"
)

type longLinesCheck struct {
	doc         *subs.Document
	layout      *layout.Service
	multipliers map[int]float64
	lineHeights map[string]float64
}

func newLongLinesCheck(lc *lint.Context) (lint.EventCheck, error) {
	if lc.Layout == nil {
		return nil, lint.Disabled("no renderer available")
	}
	aspect := lc.Document.AspectRatio()
	if aspect == subs.AspectUnknown {
		return nil, lint.Disabled("aspect ratio unknown")
	}
	return longLinesCheck{
		doc:         lc.Document,
		layout:      lc.Layout,
		multipliers: widthMultipliers[aspect],
		lineHeights: lc.Layout.LineHeights(lc.Document.Styles),
	}, nil
}

func (c longLinesCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		if ev.IsKaraoke() {
			return
		}

		width, height := c.layout.Measure(ev, c.doc.Styles, scriptResolution(c.doc))
		average := c.lineHeights[ev.Style]
		if average <= 0 {
			return
		}
		lineCount := int(math.Round(float64(height) / average))
		if lineCount == 0 {
			return
		}

		multiplier, ok := c.multipliers[lineCount]
		if !ok {
			yield(lint.Warn(fmt.Sprintf("too many lines (%d/%.2f = %d)", height, average, lineCount), ev))
			return
		}
		optimal := float64(c.doc.PlayResX()) * multiplier
		if float64(width) > optimal {
			yield(lint.Warn(fmt.Sprintf("too long line (%.2f beyond %.2f)", float64(width)-optimal, optimal), ev))
		}
	}
}
