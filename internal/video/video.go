package video

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
)

// Sample is a downscaled frame stored as packed RGB channels, row-major.
type Sample []int16

// Source supplies frames of a single video stream.
type Source interface {
	// Identity distinguishes video files in cache keys.
	Identity() string
	// FrameIndexFromPTS maps a presentation time in milliseconds to a frame index.
	FrameIndexFromPTS(ms int) int
	// Frame returns the frame downscaled to width x height, or nil when the
	// index is outside the stream.
	Frame(ctx context.Context, index, width, height int) (Sample, error)
	// AspectRatio is the pixel aspect ratio applied to horizontal measurements.
	AspectRatio() float64
}

// Identity builds a cache identity from the absolute path, size, and
// modification time of a video file.
func Identity(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve video path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat video: %w", err)
	}
	return fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}

// IndexForPTS returns the first frame whose timestamp is at or after ms,
// clamped to the last frame. It returns -1 for an empty stream.
func IndexForPTS(timestamps []int, ms int) int {
	if len(timestamps) == 0 {
		return -1
	}
	idx := sort.SearchInts(timestamps, ms)
	if idx >= len(timestamps) {
		idx = len(timestamps) - 1
	}
	return idx
}

// RebaseTimestamps shifts absolute packet timestamps so that origin becomes
// zero, matching the presentation clock subtitle times are measured on.
func RebaseTimestamps(timestamps []int, origin int) []int {
	out := make([]int, len(timestamps))
	for i, ts := range timestamps {
		out[i] = ts - origin
	}
	return out
}

// PresentationOrigin picks the container start time, or the first packet
// timestamp when the container reports none.
func PresentationOrigin(start int, hasStart bool, timestamps []int) int {
	switch {
	case hasStart:
		return start
	case len(timestamps) > 0:
		return timestamps[0]
	default:
		return 0
	}
}

// SampleFromImage converts an image of any size to a Sample with the
// image's own dimensions.
func SampleFromImage(img image.Image) Sample {
	bounds := img.Bounds()
	out := make(Sample, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out = append(out, int16(r>>8), int16(g>>8), int16(b>>8))
		}
	}
	return out
}
