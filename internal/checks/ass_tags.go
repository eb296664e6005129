package checks

import (
	"context"
	"fmt"
	"iter"

	"sublint/internal/asstag"
	"sublint/internal/lint"
	"sublint/internal/subs"
)

type assTagsCheck struct{}

func newAssTagsCheck(*lint.Context) (lint.EventCheck, error) {
	return assTagsCheck{}, nil
}

func (assTagsCheck) RunForEvent(_ context.Context, ev *subs.Event) iter.Seq[lint.Violation] {
	return func(yield func(lint.Violation) bool) {
		blocks := asstag.Blocks(ev.Text)
		parsed := make([][]asstag.Tag, len(blocks))

		for i, block := range blocks {
			var v lint.Violation
			switch {
			case !block.Closed:
				v = lint.Warn("invalid syntax (unterminated override block)", ev)
			case block.Content == "":
				v = lint.Warn("pointless tag", ev)
			case block.IsComment():
				v = lint.Warn("use notes to make comments", ev)
			default:
				tags, err := asstag.Parse(block.Content)
				if err != nil {
					v = lint.Warn(fmt.Sprintf("invalid syntax (%v)", err), ev)
					break
				}
				parsed[i] = tags
				if hasTag(tags, "a") {
					v = lint.Warn("using legacy alignment tag", ev)
				}
			}
			if v.Message != "" && !yield(v) {
				return
			}
		}

		for i := 1; i < len(blocks); i++ {
			if blocks[i-1].End != blocks[i].Start || parsed[i-1] == nil || parsed[i] == nil {
				continue
			}
			if asstag.IsKaraoke(parsed[i-1]) && asstag.IsKaraoke(parsed[i]) {
				continue
			}
			yield(lint.Warn("disjointed tags", ev))
			return
		}
	}
}

func hasTag(tags []asstag.Tag, name string) bool {
	for _, tag := range tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}
