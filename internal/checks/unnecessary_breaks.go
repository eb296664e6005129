package checks

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strings"

	"sublint/internal/layout"
	"sublint/internal/lint"
	"sublint/internal/subs"
)

var sentenceBoundary = regexp.MustCompile(`[\.!?…—] `)

type unnecessaryBreaksCheck struct {
	doc          *subs.Document
	layout       *layout.Service
	optimalWidth float64
}

func newUnnecessaryBreaksCheck(lc *lint.Context) (lint.EventCheck, error) {
	if lc.Layout == nil {
		return nil, lint.Disabled("no renderer available")
	}
	aspect := lc.Document.AspectRatio()
	if aspect == subs.AspectUnknown {
		// Reported by the video resolution check.
		return nil, lint.Disabled("aspect ratio unknown")
	}
	return unnecessaryBreaksCheck{
		doc:          lc.Document,
		layout:       lc.Layout,
		optimalWidth: float64(lc.Document.PlayResX()) * widthMultipliers[aspect][1],
	}, nil
}

func (c unnecessaryBreaksCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		if !strings.Contains(ev.Text, `\N`) || ev.IsTitle() || ev.IsKaraoke() {
			return
		}

		joined := *ev
		joined.Text = strings.ReplaceAll(ev.Text, `\N`, " ")
		manySentences := len(sentenceBoundary.Split(joined.Text, -1)) > 1 ||
			strings.Count(joined.Text, enDash) >= 2
		if manySentences {
			return
		}

		width, _ := c.layout.Measure(&joined, c.doc.Styles, scriptResolution(c.doc))
		if float64(width) < c.optimalWidth {
			yield(lint.Info(fmt.Sprintf("possibly unnecessary break (%.2f until %.2f)",
				c.optimalWidth-float64(width), c.optimalWidth), ev))
		}
	}
}
