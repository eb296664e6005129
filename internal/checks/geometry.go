package checks

import (
	"sublint/internal/layout"
	"sublint/internal/subs"
)

// widthMultipliers bound the rendered width of a line relative to PlayResX,
// by aspect ratio and line count.
var widthMultipliers = map[subs.AspectRatio]map[int]float64{
	subs.Aspect4x3:  {1: 0.825, 2: 0.9},
	subs.Aspect16x9: {1: 0.7, 2: 0.9},
}

// scriptResolution is the frame events are measured in.
func scriptResolution(doc *subs.Document) layout.Resolution {
	return layout.Resolution{Width: doc.PlayResX(), Height: doc.PlayResY()}
}
