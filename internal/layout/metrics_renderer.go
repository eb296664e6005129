package layout

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"sublint/internal/subs"
)

// Script resolution assumed when PlayResX/PlayResY are missing.
const (
	defaultPlayResX = 384
	defaultPlayResY = 288
)

type faceKey struct {
	variant int
	size    float64
}

// MetricsRenderer lays out events with Go font metrics. Every style maps to
// the Go font family in the matching weight and slant, so widths approximate
// rather than reproduce a libass render.
type MetricsRenderer struct {
	mu    sync.Mutex
	src   Source
	fonts [4]*opentype.Font
	faces map[faceKey]font.Face
}

// NewMetricsRenderer parses the embedded Go fonts.
func NewMetricsRenderer() (*MetricsRenderer, error) {
	r := &MetricsRenderer{faces: make(map[faceKey]font.Face)}
	for i, data := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse embedded font: %w", err)
		}
		r.fonts[i] = f
	}
	return r, nil
}

// SetSource replaces the document being laid out.
func (r *MetricsRenderer) SetSource(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src = src
}

// Render lays out every non-comment event visible at timeMs.
func (r *MetricsRenderer) Render(timeMs int) []Layer {
	r.mu.Lock()
	defer r.mu.Unlock()

	playResX := r.src.Info.Int("PlayResX")
	playResY := r.src.Info.Int("PlayResY")
	if playResX <= 0 {
		playResX = defaultPlayResX
	}
	if playResY <= 0 {
		playResY = defaultPlayResY
	}
	res := r.src.Resolution
	if res.Width <= 0 || res.Height <= 0 {
		res = Resolution{Width: playResX, Height: playResY}
	}
	sy := float64(res.Height) / float64(playResY)
	sx := float64(res.Width) / float64(playResX)
	wrapStyle := r.src.Info.Int("WrapStyle")

	var layers []Layer
	for _, ev := range r.src.Events {
		if ev.Comment || timeMs < ev.Start || timeMs >= ev.End {
			continue
		}
		style, ok := r.src.Styles.Get(ev.Style)
		if !ok {
			style = subs.DefaultStyle(ev.Style)
		}
		layers = append(layers, r.layoutEvent(ev, style, wrapStyle, sx, sy, res)...)
	}
	return layers
}

func (r *MetricsRenderer) layoutEvent(ev *subs.Event, style subs.Style, wrapStyle int, sx, sy float64, res Resolution) []Layer {
	face, err := r.face(style, style.FontSize*sy)
	if err != nil {
		return nil
	}
	scaleX := percent(style.ScaleX) * sx / sy
	scaleY := percent(style.ScaleY)
	spacing := style.Spacing * sx

	measure := func(line string) int {
		width := float64(font.MeasureString(face, line).Ceil())*scaleX + spacing*float64(utf8.RuneCountInString(line))
		return int(math.Ceil(width))
	}

	maxWidth := float64(res.Width) - float64(style.MarginL+style.MarginR)*sx
	var lines []string
	for _, hard := range splitHardBreaks(ev.Text, wrapStyle) {
		if wrapStyle == 2 || maxWidth <= 0 {
			lines = append(lines, hard)
			continue
		}
		lines = append(lines, wrapLine(hard, int(maxWidth), measure)...)
	}

	lineHeight := int(math.Ceil(float64(face.Metrics().Height.Ceil()) * scaleY))
	total := lineHeight * len(lines)
	outline := int(math.Ceil(style.Outline * sy))

	align := style.Alignment
	if align < 1 || align > 9 {
		align = 2
	}
	col, row := (align-1)%3, (align-1)/3

	var top int
	switch row {
	case 0:
		top = res.Height - int(float64(style.MarginV)*sy) - total
	case 1:
		top = (res.Height - total) / 2
	default:
		top = int(float64(style.MarginV) * sy)
	}

	layers := make([]Layer, 0, len(lines)*2)
	for i, line := range lines {
		width := measure(line)
		if width == 0 {
			continue
		}
		var left int
		switch col {
		case 0:
			left = int(float64(style.MarginL) * sx)
		case 1:
			left = (res.Width - width) / 2
		default:
			left = res.Width - int(float64(style.MarginR)*sx) - width
		}
		y := top + i*lineHeight
		if outline > 0 {
			layers = append(layers, Layer{Type: LayerOutline, DstX: left - outline, DstY: y - outline, W: width + 2*outline, H: lineHeight + 2*outline})
		}
		layers = append(layers, Layer{Type: LayerText, DstX: left, DstY: y, W: width, H: lineHeight})
	}
	return layers
}

func (r *MetricsRenderer) face(style subs.Style, size float64) (font.Face, error) {
	variant := 0
	if style.Bold {
		variant |= 1
	}
	if style.Italic {
		variant |= 2
	}
	if size <= 0 {
		size = 1
	}
	key := faceKey{variant: variant, size: math.Round(size*2) / 2}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(r.fonts[variant], &opentype.FaceOptions{Size: key.size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	r.faces[key] = face
	return face, nil
}

// splitHardBreaks turns override-free text into lines. \n is a break only
// when wrapping is disabled; otherwise it renders as a space.
func splitHardBreaks(text string, wrapStyle int) []string {
	if wrapStyle != 2 {
		text = strings.ReplaceAll(text, `\n`, " ")
	}
	return strings.Split(subs.PlainText(text), "\n")
}

func wrapLine(line string, maxWidth int, measure func(string) int) []string {
	if measure(line) <= maxWidth {
		return []string{line}
	}
	words := strings.Fields(line)
	var out []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current != "" && measure(candidate) > maxWidth {
			out = append(out, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func percent(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v / 100
}
