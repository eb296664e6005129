// Package neighbor links each content-bearing event to the previous and next
// content-bearing events so checks can skip comments and blank lines.
package neighbor

import "sublint/internal/subs"

// Index maps event indices to their content-bearing neighbors.
type Index struct {
	forward  map[int]*subs.Event
	backward map[int]*subs.Event
}

// Build scans events once. Events that are comments or have no plaintext are
// skipped and never appear in either map.
func Build(events []*subs.Event) *Index {
	idx := &Index{
		forward:  make(map[int]*subs.Event),
		backward: make(map[int]*subs.Event),
	}
	var last *subs.Event
	for _, ev := range events {
		if !ev.HasContent() {
			continue
		}
		if last != nil {
			idx.forward[last.Index] = ev
			idx.backward[ev.Index] = last
		}
		last = ev
	}
	return idx
}

// Next returns the following content-bearing event.
func (i *Index) Next(ev *subs.Event) (*subs.Event, bool) {
	if i == nil || ev == nil {
		return nil, false
	}
	next, ok := i.forward[ev.Index]
	return next, ok
}

// Prev returns the preceding content-bearing event.
func (i *Index) Prev(ev *subs.Event) (*subs.Event, bool) {
	if i == nil || ev == nil {
		return nil, false
	}
	prev, ok := i.backward[ev.Index]
	return prev, ok
}
