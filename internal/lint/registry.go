package lint

import "fmt"

// Kind distinguishes per-event checks from whole-document checks.
type Kind int

const (
	KindEvent Kind = iota
	KindDocument
)

func (k Kind) String() string {
	if k == KindDocument {
		return "document"
	}
	return "event"
}

// Tier separates cheap checks from those needing network or video decoding.
type Tier int

const (
	TierCheap Tier = iota
	TierExpensive
)

func (t Tier) String() string {
	if t == TierExpensive {
		return "expensive"
	}
	return "cheap"
}

// Entry describes one registered check. Exactly one of NewEvent and
// NewDocument is set.
type Entry struct {
	Name        string
	Tier        Tier
	NewEvent    func(*Context) (EventCheck, error)
	NewDocument func(*Context) (DocumentCheck, error)
}

// Kind reports which factory is set.
func (e Entry) Kind() Kind {
	if e.NewDocument != nil {
		return KindDocument
	}
	return KindEvent
}

// EventEntry registers a per-event check.
func EventEntry(name string, tier Tier, factory func(*Context) (EventCheck, error)) Entry {
	return Entry{Name: name, Tier: tier, NewEvent: factory}
}

// DocumentEntry registers a whole-document check.
func DocumentEntry(name string, tier Tier, factory func(*Context) (DocumentCheck, error)) Entry {
	return Entry{Name: name, Tier: tier, NewDocument: factory}
}

// Registry is an ordered list of checks. Order is significant: results are
// reported grouped by check in this order.
type Registry struct {
	entries []Entry
}

// NewRegistry validates names and keeps entries in the given order.
func NewRegistry(entries ...Entry) (*Registry, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("registry: entry without name")
		}
		if (entry.NewEvent == nil) == (entry.NewDocument == nil) {
			return nil, fmt.Errorf("registry: %s must set exactly one factory", entry.Name)
		}
		if _, dup := seen[entry.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate check %q", entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return &Registry{entries: append([]Entry(nil), entries...)}, nil
}

// Entries returns a copy of all entries.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Names lists entry names in order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.entries))
	for i, entry := range r.entries {
		out[i] = entry.Name
	}
	return out
}

// Select returns the cheap checks, plus the expensive ones when full is set.
// enabled, when non-nil, drops entries it rejects.
func (r *Registry) Select(full bool, enabled func(name string) bool) []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		if entry.Tier == TierExpensive && !full {
			continue
		}
		if enabled != nil && !enabled(entry.Name) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
