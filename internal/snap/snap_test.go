package snap

import (
	"context"
	"errors"
	"testing"

	"sublint/internal/video"
)

type brightnessSource struct {
	values []int16
	calls  int
	fail   map[int]bool
}

func (s *brightnessSource) Identity() string { return "clip" }

func (s *brightnessSource) FrameIndexFromPTS(ms int) int { return ms }

func (s *brightnessSource) AspectRatio() float64 { return 1 }

func (s *brightnessSource) Frame(_ context.Context, index, width, height int) (video.Sample, error) {
	s.calls++
	if s.fail[index] {
		return nil, errors.New("decode failed")
	}
	if index < 0 || index >= len(s.values) {
		return nil, nil
	}
	sample := make(video.Sample, width*height*3)
	for i := range sample {
		sample[i] = s.values[index]
	}
	return sample, nil
}

func TestDetectorBrightnessNeighbourhoods(t *testing.T) {
	cases := []struct {
		name   string
		values []int16
		snaps  bool
	}{
		{"flat bright neighbourhood", []int16{100, 100, 100, 100, 100}, true},
		{"1 frame early", []int16{0, 100, 100, 100, 100}, false},
		{"ideal fit", []int16{0, 0, 100, 100, 100}, true},
		{"1 frame late", []int16{0, 0, 0, 100, 100}, false},
		{"2 frames late", []int16{0, 0, 0, 0, 100}, false},
		{"flat dark neighbourhood", []int16{0, 0, 0, 0, 0}, true},
		{"ignore small changes", []int16{0, 1, 100, 100, 100}, true},
		{"biggest change on scene boundary", []int16{0, 5, 100, 93, 94}, true},
		{"biggest change 1 frame early", []int16{0, 25, 26, 27, 26}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			detector := NewDetector(&brightnessSource{values: tc.values}, nil, DefaultOptions(), nil)
			if got := detector.Snaps(t.Context(), 2); got != tc.snaps {
				pivot, ok := detector.BestPivot(t.Context(), 2)
				t.Fatalf("Snaps = %v, want %v (pivot %d, found %v)", got, tc.snaps, pivot, ok)
			}
		})
	}
}

func TestDetectorPivotOffsets(t *testing.T) {
	detector := NewDetector(&brightnessSource{values: []int16{0, 0, 0, 100, 100}}, nil, DefaultOptions(), nil)
	pivot, ok := detector.BestPivot(t.Context(), 2)
	if !ok || pivot != 1 {
		t.Fatalf("expected pivot +1, got %d (found %v)", pivot, ok)
	}

	detector = NewDetector(&brightnessSource{values: []int16{0, 100, 100, 100, 100}}, nil, DefaultOptions(), nil)
	pivot, ok = detector.BestPivot(t.Context(), 2)
	if !ok || pivot != -1 {
		t.Fatalf("expected pivot -1, got %d (found %v)", pivot, ok)
	}
}

func TestDetectorTieBreakPrefersSmallerOffset(t *testing.T) {
	// Equal jumps at offsets -1 and +1 and a smaller one at 0.
	detector := NewDetector(&brightnessSource{values: []int16{0, 100, 60, 160, 160}}, nil, DefaultOptions(), nil)
	pivot, ok := detector.BestPivot(t.Context(), 2)
	if !ok || pivot != -1 {
		t.Fatalf("expected pivot -1 on equal diffs, got %d (found %v)", pivot, ok)
	}
	if !preferPivot(0, 50, 1, 50) {
		t.Fatal("expected offset 0 to beat +1 on equal diff")
	}
	if preferPivot(1, 50, -1, 50) {
		t.Fatal("expected -1 to beat +1 on equal diff")
	}
	if !preferPivot(2, 60, 0, 50) {
		t.Fatal("expected larger diff to win regardless of offset")
	}
}

func TestDetectorMissingFramesDegrade(t *testing.T) {
	source := &brightnessSource{
		values: []int16{0, 0, 100, 100, 100},
		fail:   map[int]bool{1: true},
	}
	detector := NewDetector(source, nil, DefaultOptions(), nil)
	// The 0->100 jump between frames 1 and 2 disappears with frame 1.
	if _, ok := detector.BestPivot(t.Context(), 2); ok {
		t.Fatal("expected no pivot when the boundary frame is missing")
	}

	// Timestamps near the stream start reference negative frame indices.
	detector = NewDetector(&brightnessSource{values: []int16{0, 100, 100}}, nil, DefaultOptions(), nil)
	pivot, ok := detector.BestPivot(t.Context(), 0)
	if !ok || pivot != 1 {
		t.Fatalf("expected pivot +1 near stream start, got %d (found %v)", pivot, ok)
	}
}

func TestCacheAvoidsRepeatedDecodes(t *testing.T) {
	source := &brightnessSource{values: []int16{0, 0, 100, 100, 100, 100, 100}}
	cache := NewCache(nil, nil)
	detector := NewDetector(source, cache, DefaultOptions(), nil)

	detector.BestPivot(t.Context(), 2)
	if source.calls != 5 {
		t.Fatalf("expected 5 frame decodes, got %d", source.calls)
	}
	detector.BestPivot(t.Context(), 2)
	if source.calls != 5 {
		t.Fatalf("expected decision cache hit, got %d decodes", source.calls)
	}
	detector.BestPivot(t.Context(), 3)
	if source.calls != 6 {
		t.Fatalf("expected only one new frame decode, got %d", source.calls)
	}
	frames, decisions := cache.Len()
	if frames != 6 || decisions != 2 {
		t.Fatalf("unexpected cache sizes: frames=%d decisions=%d", frames, decisions)
	}

	if err := cache.Clear(t.Context()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	frames, decisions = cache.Len()
	if frames != 0 || decisions != 0 {
		t.Fatalf("expected empty cache after clear, got frames=%d decisions=%d", frames, decisions)
	}
}

type memoryBackend struct {
	frames    map[FrameKey]video.Sample
	decisions map[DecisionKey]Decision
	cleared   bool
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{frames: map[FrameKey]video.Sample{}, decisions: map[DecisionKey]Decision{}}
}

func (m *memoryBackend) LoadFrame(_ context.Context, key FrameKey) (video.Sample, bool, error) {
	sample, ok := m.frames[key]
	return sample, ok, nil
}

func (m *memoryBackend) StoreFrame(_ context.Context, key FrameKey, sample video.Sample) error {
	m.frames[key] = sample
	return nil
}

func (m *memoryBackend) LoadDecision(_ context.Context, key DecisionKey) (Decision, bool, error) {
	decision, ok := m.decisions[key]
	return decision, ok, nil
}

func (m *memoryBackend) StoreDecision(_ context.Context, key DecisionKey, decision Decision) error {
	m.decisions[key] = decision
	return nil
}

func (m *memoryBackend) Clear(context.Context) error {
	m.cleared = true
	m.frames = map[FrameKey]video.Sample{}
	m.decisions = map[DecisionKey]Decision{}
	return nil
}

func TestCacheBackendSurvivesNewCache(t *testing.T) {
	backend := newMemoryBackend()
	source := &brightnessSource{values: []int16{0, 0, 0, 100, 100}}

	first := NewDetector(source, NewCache(backend, nil), DefaultOptions(), nil)
	first.BestPivot(t.Context(), 2)
	decodes := source.calls

	second := NewDetector(source, NewCache(backend, nil), DefaultOptions(), nil)
	pivot, ok := second.BestPivot(t.Context(), 2)
	if !ok || pivot != 1 {
		t.Fatalf("expected persisted pivot +1, got %d (found %v)", pivot, ok)
	}
	if source.calls != decodes {
		t.Fatalf("expected no decodes from a warm backend, got %d extra", source.calls-decodes)
	}

	if err := NewCache(backend, nil).Clear(t.Context()); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if !backend.cleared {
		t.Fatal("expected backend to be cleared")
	}
}

func TestPersistedDecisionsFollowThreshold(t *testing.T) {
	backend := newMemoryBackend()
	source := &brightnessSource{values: []int16{0, 30, 30, 30, 30}}

	loose := NewDetector(source, NewCache(backend, nil), DefaultOptions(), nil)
	if pivot, ok := loose.BestPivot(t.Context(), 2); !ok || pivot != -1 {
		t.Fatalf("expected pivot -1 at the default threshold, got %d (found %v)", pivot, ok)
	}

	opts := DefaultOptions()
	opts.MinRGBDelta = 200
	strict := NewDetector(source, NewCache(backend, nil), opts, nil)
	if pivot, ok := strict.BestPivot(t.Context(), 2); ok {
		t.Fatalf("expected no pivot above the raised threshold, got %d", pivot)
	}
	if len(backend.decisions) != 2 {
		t.Fatalf("expected one stored decision per tuning, got %d", len(backend.decisions))
	}
}

func TestPersistedFramesFollowSampleSize(t *testing.T) {
	backend := newMemoryBackend()
	source := &brightnessSource{values: []int16{0, 0, 0, 0, 100}}

	coarse := NewDetector(source, NewCache(backend, nil), DefaultOptions(), nil)
	if _, ok := coarse.BestPivot(t.Context(), 1); ok {
		t.Fatal("expected no pivot around a flat start")
	}

	opts := DefaultOptions()
	opts.SampleWidth, opts.SampleHeight = 8, 6
	fine := NewDetector(source, NewCache(backend, nil), opts, nil)
	pivot, ok := fine.BestPivot(t.Context(), 2)
	if !ok || pivot != 2 {
		t.Fatalf("expected pivot +2 with a larger sample grid, got %d (found %v)", pivot, ok)
	}
	for key, sample := range backend.frames {
		if sample != nil && len(sample) != key.Width*key.Height*3 {
			t.Fatalf("frame %+v stored with %d channels", key, len(sample))
		}
	}
}

func TestOptionsTuning(t *testing.T) {
	opts := DefaultOptions()
	if got := opts.Tuning(); got != "d2/t25/4x3" {
		t.Fatalf("unexpected tuning %q", got)
	}
	opts.MinRGBDelta = 12.5
	if got := opts.Tuning(); got != "d2/t12.5/4x3" {
		t.Fatalf("unexpected tuning %q", got)
	}
}

func TestZeroThresholdFallsBackToDefault(t *testing.T) {
	detector := NewDetector(&brightnessSource{values: []int16{0, 0, 0, 0, 0}}, nil, Options{}, nil)
	if detector.opts != DefaultOptions() {
		t.Fatalf("expected default options, got %+v", detector.opts)
	}
	if !detector.Snaps(t.Context(), 2) {
		t.Fatal("expected flat frames to snap")
	}
}

func TestCancelledDecisionsAreNotCached(t *testing.T) {
	source := &brightnessSource{values: []int16{0, 0, 100, 100, 100}}
	cache := NewCache(nil, nil)
	detector := NewDetector(source, cache, DefaultOptions(), nil)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	detector.BestPivot(ctx, 2)
	if _, decisions := cache.Len(); decisions != 0 {
		t.Fatalf("expected no cached decision after cancellation, got %d", decisions)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	diff, ok := MeanAbsDiff(video.Sample{0, 10, 20}, video.Sample{10, 0, 50})
	if !ok || diff != 50.0/3 {
		t.Fatalf("unexpected diff %v (ok %v)", diff, ok)
	}
	if _, ok := MeanAbsDiff(video.Sample{1}, video.Sample{1, 2}); ok {
		t.Fatal("expected mismatched sizes to be rejected")
	}
}
