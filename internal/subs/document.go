package subs

import (
	"math"
	"strconv"
	"strings"
)

// AspectRatio classifies the script resolution.
type AspectRatio int

const (
	AspectUnknown AspectRatio = iota
	Aspect4x3
	Aspect16x9
)

func (a AspectRatio) String() string {
	switch a {
	case Aspect4x3:
		return "4:3"
	case Aspect16x9:
		return "16:9"
	default:
		return "unknown"
	}
}

// maxAspectDiff is the relative tolerance when classifying aspect ratios.
const maxAspectDiff = 0.05

// ScriptInfo holds [Script Info] key/value pairs in declaration order.
type ScriptInfo struct {
	keys   []string
	values map[string]string
}

// Get returns the value for key.
func (s *ScriptInfo) Get(key string) (string, bool) {
	if s == nil || s.values == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, keeping first-seen order.
func (s *ScriptInfo) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Keys returns the keys in declaration order.
func (s *ScriptInfo) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Clone returns an independent copy.
func (s *ScriptInfo) Clone() ScriptInfo {
	var out ScriptInfo
	for _, key := range s.keys {
		out.Set(key, s.values[key])
	}
	return out
}

// Int parses key as an integer, returning 0 when missing or malformed.
func (s *ScriptInfo) Int(key string) int {
	raw, ok := s.Get(key)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

// Document is a loaded subtitle file.
type Document struct {
	Path   string
	Info   ScriptInfo
	Styles StyleList
	Events []*Event
	// Selection holds the indices of the currently selected events.
	Selection []int
}

// NewDocument builds a document and assigns event indices.
func NewDocument(styles StyleList, events []*Event) *Document {
	doc := &Document{Styles: styles, Events: events}
	doc.Reindex()
	return doc
}

// Reindex assigns each event its position.
func (d *Document) Reindex() {
	for i, ev := range d.Events {
		ev.Index = i
	}
}

// Event returns the event at index.
func (d *Document) Event(index int) (*Event, bool) {
	if index < 0 || index >= len(d.Events) {
		return nil, false
	}
	return d.Events[index], true
}

// PlayResX returns the script horizontal resolution, 0 when unknown.
func (d *Document) PlayResX() int {
	return d.Info.Int("PlayResX")
}

// PlayResY returns the script vertical resolution, 0 when unknown.
func (d *Document) PlayResY() int {
	return d.Info.Int("PlayResY")
}

// WrapStyle returns the script wrap mode (0 smart, 1 end-of-line, 2 none, 3 smart-lower).
func (d *Document) WrapStyle() int {
	return d.Info.Int("WrapStyle")
}

// Language returns the language declared by the document, if any.
func (d *Document) Language() string {
	if lang, ok := d.Info.Get("Language"); ok {
		return strings.TrimSpace(lang)
	}
	return ""
}

// AspectRatio classifies PlayResX/PlayResY as 4:3 or 16:9 within 5%.
func (d *Document) AspectRatio() AspectRatio {
	return ClassifyAspectRatio(d.PlayResX(), d.PlayResY())
}

// ClassifyAspectRatio maps a resolution to a known aspect ratio.
func ClassifyAspectRatio(width, height int) AspectRatio {
	if width <= 0 || height <= 0 {
		return AspectUnknown
	}
	src := float64(width) / float64(height)
	for _, candidate := range []struct {
		ratio float64
		value AspectRatio
	}{
		{4.0 / 3.0, Aspect4x3},
		{16.0 / 9.0, Aspect16x9},
	} {
		diff := math.Max(candidate.ratio, src)/math.Min(candidate.ratio, src) - 1
		if diff < maxAspectDiff {
			return candidate.value
		}
	}
	return AspectUnknown
}
