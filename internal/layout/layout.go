// Package layout measures how large an event renders on screen.
//
// The Service drives a Renderer with a one-event document and reduces the
// rendered text layers to a bounding box. MetricsRenderer is the built-in
// Renderer; it lays text out with real font metrics but does not rasterize.
package layout

import (
	"log/slog"
	"math"
	"strings"

	"sublint/internal/logging"
	"sublint/internal/subs"
)

// LayerType distinguishes rendered bitmap layers.
type LayerType int

const (
	LayerText LayerType = iota
	LayerOutline
	LayerShadow
)

// Layer is one positioned bitmap produced by a Renderer.
type Layer struct {
	Type LayerType
	DstX int
	DstY int
	W    int
	H    int
}

// Resolution is a frame size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// Source is the document a Renderer draws from.
type Source struct {
	Info       subs.ScriptInfo
	Styles     subs.StyleList
	Events     []*subs.Event
	Resolution Resolution
}

// Renderer rasterizes (or lays out) subtitles at a point in time.
type Renderer interface {
	SetSource(src Source)
	Render(timeMs int) []Layer
}

// Service measures events through a Renderer. It mutates the renderer's
// source on every call and is not safe for concurrent use.
type Service struct {
	renderer Renderer
	info     subs.ScriptInfo
	aspect   float64
	logger   *slog.Logger
}

// NewService builds a measurement service. aspect is the video pixel aspect
// ratio; zero or negative means no video and is treated as 1.
func NewService(renderer Renderer, info subs.ScriptInfo, aspect float64, logger *slog.Logger) *Service {
	if aspect <= 0 {
		aspect = 1
	}
	return &Service{
		renderer: renderer,
		info:     info.Clone(),
		aspect:   aspect,
		logger:   logging.NewComponentLogger(logger, "layout"),
	}
}

// Measure returns the rendered bounding box of ev. Width is scaled by the
// video aspect ratio. Unknown styles and empty renders measure (0, 0).
func (s *Service) Measure(ev *subs.Event, styles subs.StyleList, res Resolution) (int, int) {
	return s.measure(ev, styles, s.info, res)
}

func (s *Service) measure(ev *subs.Event, styles subs.StyleList, info subs.ScriptInfo, res Resolution) (int, int) {
	if _, ok := styles.Get(ev.Style); !ok {
		return 0, 0
	}
	copied := *ev
	copied.Index = 0
	stylesCopy := make(subs.StyleList, len(styles))
	copy(stylesCopy, styles)
	s.renderer.SetSource(Source{
		Info:       info.Clone(),
		Styles:     stylesCopy,
		Events:     []*subs.Event{&copied},
		Resolution: res,
	})

	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	found := false
	for _, layer := range s.renderer.Render(ev.Start) {
		if layer.Type != LayerText {
			continue
		}
		found = true
		minX = min(minX, layer.DstX)
		minY = min(minY, layer.DstY)
		maxX = max(maxX, layer.DstX+layer.W)
		maxY = max(maxY, layer.DstY+layer.H)
	}
	if !found {
		return 0, 0
	}
	return int(float64(maxX-minX) * s.aspect), maxY - minY
}

const (
	probeLineCount = 20
	probeWidth     = 100
	probeLineSpace = 300
)

// LineHeights returns the average height of a single line for each style in
// script pixels, measured with wrapping disabled on a tall probe frame.
func (s *Service) LineHeights(styles subs.StyleList) map[string]float64 {
	info := s.info.Clone()
	info.Set("WrapStyle", "2")
	res := Resolution{Width: probeWidth, Height: probeLineCount * probeLineSpace}
	text := strings.Repeat(`gjMW\N`, probeLineCount-1) + "gjMW"
	playResY := info.Int("PlayResY")
	if playResY <= 0 {
		playResY = defaultPlayResY
	}
	toScript := float64(playResY) / float64(res.Height)

	out := make(map[string]float64, len(styles))
	for _, style := range styles {
		ev := &subs.Event{Index: -1, Start: 0, End: 1000, Style: style.Name, Text: text}
		_, height := s.measure(ev, styles, info, res)
		lineHeight := float64(height) / probeLineCount * toScript
		out[style.Name] = lineHeight
		s.logger.Debug("average line height", logging.String("style", style.Name), logging.Float64("line_height", lineHeight))
	}
	return out
}
