package checks

import (
	"context"
	"fmt"
	"iter"

	"sublint/internal/lint"
	"sublint/internal/snap"
	"sublint/internal/subs"
)

type timingCheck struct {
	detector *snap.Detector
}

func newTimingCheck(lc *lint.Context) (lint.EventCheck, error) {
	if lc.Snap == nil {
		return nil, lint.Disabled("no video loaded")
	}
	return timingCheck{detector: lc.Snap}, nil
}

func (c timingCheck) RunForEvent(ctx context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		if ev.Comment || ev.IsKaraoke() {
			return
		}
		for _, edge := range []struct {
			name string
			pts  int
		}{{"start", ev.Start}, {"end", ev.End}} {
			pivot, ok := c.detector.BestPivot(ctx, edge.pts)
			if !ok || pivot == 0 {
				continue
			}
			message := fmt.Sprintf("%s does not snap to scene boundary (%sf)", edge.name, formatDelta(pivot))
			if !yield(lint.Warn(message, ev)) {
				return
			}
		}
	}
}

func formatDelta(delta int) string {
	if delta >= 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
