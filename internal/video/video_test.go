package video

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func TestIndexForPTS(t *testing.T) {
	timestamps := []int{0, 42, 83, 125}
	cases := []struct {
		ms   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{1, 1},
		{42, 1},
		{100, 3},
		{5000, 3},
	}
	for _, tc := range cases {
		if got := IndexForPTS(timestamps, tc.ms); got != tc.want {
			t.Fatalf("IndexForPTS(%d) = %d, want %d", tc.ms, got, tc.want)
		}
	}
	if got := IndexForPTS(nil, 10); got != -1 {
		t.Fatalf("expected -1 for empty stream, got %d", got)
	}
}

func TestIndexForPTSOnOffsetStream(t *testing.T) {
	packets := make([]int, 100)
	for i := range packets {
		packets[i] = 1400 + 42*i
	}
	if got := IndexForPTS(packets, 1000); got != 0 {
		t.Fatalf("expected absolute timestamps to clamp to frame 0, got %d", got)
	}

	origin := PresentationOrigin(1400, true, packets)
	timestamps := RebaseTimestamps(packets, origin)
	if timestamps[0] != 0 || timestamps[99] != 42*99 {
		t.Fatalf("unexpected rebased range %d..%d", timestamps[0], timestamps[99])
	}
	index := IndexForPTS(timestamps, 1000)
	if index != 24 {
		t.Fatalf("expected frame 24 for 1000 ms, got %d", index)
	}
	if packets[index] != 2408 {
		t.Fatalf("expected the frame shown at 2408 ms absolute, got %d", packets[index])
	}
}

func TestPresentationOrigin(t *testing.T) {
	cases := []struct {
		name       string
		start      int
		hasStart   bool
		timestamps []int
		want       int
	}{
		{"container start", 1400, true, []int{1480, 1522}, 1400},
		{"first packet", 0, false, []int{1480, 1522}, 1480},
		{"empty stream", 0, false, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PresentationOrigin(tc.start, tc.hasStart, tc.timestamps); got != tc.want {
				t.Fatalf("PresentationOrigin = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSampleFromImageBoxDownscale(t *testing.T) {
	img := imaging.New(8, 6, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	small := imaging.Resize(img, 4, 3, imaging.Box)
	sample := SampleFromImage(small)
	if len(sample) != 4*3*3 {
		t.Fatalf("expected 36 channels, got %d", len(sample))
	}
	for i := 0; i < len(sample); i += 3 {
		if sample[i] != 200 || sample[i+1] != 100 || sample[i+2] != 50 {
			t.Fatalf("unexpected pixel at %d: %v", i/3, sample[i:i+3])
		}
	}
}

func TestSampleFromImageHonoursBoundsOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 2, 4, 3))
	img.Set(2, 2, color.NRGBA{R: 10, A: 255})
	img.Set(3, 2, color.NRGBA{G: 20, A: 255})
	sample := SampleFromImage(img)
	want := Sample{10, 0, 0, 0, 20, 0}
	if len(sample) != len(want) {
		t.Fatalf("expected %v, got %v", want, sample)
	}
	for i := range want {
		if sample[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, sample)
		}
	}
}

func TestIdentityChangesWithContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mkv")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	first, err := Identity(path)
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if !strings.HasPrefix(first, path) {
		t.Fatalf("expected identity to start with path, got %q", first)
	}
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	second, err := Identity(path)
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if first == second {
		t.Fatal("expected identity to change after size change")
	}
	if _, err := Identity(filepath.Join(t.TempDir(), "missing.mkv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFrameOutOfRangeReturnsNil(t *testing.T) {
	src := &FFmpegSource{timestamps: []int{0, 40}}
	sample, err := src.Frame(t.Context(), 5, 4, 3)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if sample != nil {
		t.Fatalf("expected nil sample, got %v", sample)
	}
	if src.FrameIndexFromPTS(39) != 1 {
		t.Fatalf("expected index 1")
	}
}
