package lint

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"sublint/internal/logging"
)

// Direction selects which neighbouring violation to focus.
type Direction int

const (
	Previous Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Next {
		return "next"
	}
	return "prev"
}

// ParseDirection accepts "next", "prev" and "previous".
func ParseDirection(value string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "next":
		return Next, nil
	case "prev", "previous":
		return Previous, nil
	default:
		return 0, fmt.Errorf("unknown focus direction %q (want next or prev)", value)
	}
}

// Focus picks the event index to select. Only Warning and Error results
// count. Previous steps back from the lowest selected index and wraps to the
// last candidate; Next steps forward from the highest and wraps to the
// first. An empty selection behaves as index -1. ok is false when nothing
// qualifies.
func Focus(violations []Violation, selection []int, dir Direction) (int, bool) {
	candidates := actionableIndices(violations)
	if len(candidates) == 0 {
		return 0, false
	}
	n := len(candidates)

	switch dir {
	case Previous:
		current := -1
		if len(selection) > 0 {
			current = slices.Min(selection)
		}
		pos := sort.SearchInts(candidates, current) - 1
		if pos < 0 {
			pos += n
		}
		return candidates[pos], true
	default:
		current := -1
		if len(selection) > 0 {
			current = slices.Max(selection)
		}
		pos := sort.Search(n, func(i int) bool { return candidates[i] > current })
		return candidates[pos%n], true
	}
}

func actionableIndices(violations []Violation) []int {
	seen := make(map[int]struct{})
	out := make([]int, 0, len(violations))
	for _, v := range violations {
		if !v.Severity.Actionable() || v.Event == nil || v.Event.Index < 0 {
			continue
		}
		if _, ok := seen[v.Event.Index]; ok {
			continue
		}
		seen[v.Event.Index] = struct{}{}
		out = append(out, v.Event.Index)
	}
	sort.Ints(out)
	return out
}

// Navigator moves the document selection between offending events.
type Navigator struct {
	runner *Runner
	logger *slog.Logger
}

// NewNavigator runs only the event checks among entries.
func NewNavigator(entries []Entry, logger *slog.Logger) *Navigator {
	eventOnly := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind() == KindEvent {
			eventOnly = append(eventOnly, entry)
		}
	}
	return &Navigator{
		runner: NewRunner(eventOnly, logger),
		logger: logging.NewComponentLogger(logger, "focus"),
	}
}

// Focus runs the event checks, selects the next offending event in dir, and
// logs that event's warnings and errors to the sink. The selection is unchanged when no
// event qualifies.
func (n *Navigator) Focus(ctx context.Context, lc *Context, dir Direction) (int, bool) {
	violations := slices.Collect(n.runner.Violations(ctx, lc))
	doc := lc.Document
	index, ok := Focus(violations, doc.Selection, dir)
	if !ok {
		n.logger.Debug("no violations to focus", logging.String("direction", dir.String()))
		return 0, false
	}
	doc.Selection = []int{index}
	for _, v := range violations {
		if v.EventIndex() == index && v.Severity.Actionable() {
			lc.Sink.Log(v.Severity, v.String())
		}
	}
	return index, true
}
