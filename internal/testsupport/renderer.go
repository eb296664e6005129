package testsupport

import (
	"strings"
	"unicode/utf8"

	"sublint/internal/layout"
	"sublint/internal/subs"
)

// FakeRenderer lays text out on a fixed grid: every rune is CharWidth wide
// and every line LineHeight tall, in script pixels, scaled to the requested
// resolution. FixedWidth, when set, overrides the computed width.
type FakeRenderer struct {
	CharWidth  int
	LineHeight int
	FixedWidth int

	src     layout.Source
	Renders int
}

// SetSource implements layout.Renderer.
func (r *FakeRenderer) SetSource(src layout.Source) {
	r.src = src
}

// Render implements layout.Renderer. It also emits an outline layer so
// callers must filter by type.
func (r *FakeRenderer) Render(timeMs int) []layout.Layer {
	r.Renders++
	var out []layout.Layer
	for _, ev := range r.src.Events {
		if ev.Comment || timeMs < ev.Start || timeMs >= ev.End {
			continue
		}
		text := ev.PlainText()
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		longest := 0
		for _, line := range lines {
			longest = max(longest, utf8.RuneCountInString(line))
		}
		width := r.CharWidth * longest
		if r.FixedWidth > 0 {
			width = r.FixedWidth
		}
		height := r.LineHeight * len(lines)
		sx, sy := r.scale()
		w, h := int(float64(width)*sx), int(float64(height)*sy)
		out = append(out,
			layout.Layer{Type: layout.LayerOutline, DstX: 8, DstY: 8, W: w + 4, H: h + 4},
			layout.Layer{Type: layout.LayerText, DstX: 10, DstY: 10, W: w, H: h},
		)
	}
	return out
}

func (r *FakeRenderer) scale() (float64, float64) {
	sx, sy := 1.0, 1.0
	info := r.src.Info
	if x := info.Int("PlayResX"); x > 0 && r.src.Resolution.Width > 0 {
		sx = float64(r.src.Resolution.Width) / float64(x)
	}
	if y := info.Int("PlayResY"); y > 0 && r.src.Resolution.Height > 0 {
		sy = float64(r.src.Resolution.Height) / float64(y)
	}
	return sx, sy
}

// NewLayout builds a layout service for doc backed by renderer.
func NewLayout(doc *subs.Document, renderer layout.Renderer) *layout.Service {
	return layout.NewService(renderer, doc.Info, 1, nil)
}
