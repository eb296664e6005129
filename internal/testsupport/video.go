package testsupport

import (
	"context"
	"errors"
	"sync"

	"sublint/internal/video"
)

// FakeVideo serves flat-colour frames: frame i has every channel set to
// Brightness[i]. Timestamps map to frames at MsPerFrame.
type FakeVideo struct {
	ID         string
	Brightness []int16
	MsPerFrame int
	Failing    map[int]bool

	mu    sync.Mutex
	calls int
}

// Identity implements video.Source.
func (v *FakeVideo) Identity() string {
	if v.ID == "" {
		return "fake-video"
	}
	return v.ID
}

// FrameIndexFromPTS implements video.Source.
func (v *FakeVideo) FrameIndexFromPTS(ms int) int {
	if v.MsPerFrame <= 0 {
		return ms
	}
	return ms / v.MsPerFrame
}

// AspectRatio implements video.Source.
func (v *FakeVideo) AspectRatio() float64 { return 1 }

// Frame implements video.Source.
func (v *FakeVideo) Frame(_ context.Context, index, width, height int) (video.Sample, error) {
	v.mu.Lock()
	v.calls++
	v.mu.Unlock()
	if v.Failing[index] {
		return nil, errors.New("decode failed")
	}
	if index < 0 || index >= len(v.Brightness) {
		return nil, nil
	}
	sample := make(video.Sample, width*height*3)
	for i := range sample {
		sample[i] = v.Brightness[index]
	}
	return sample, nil
}

// Calls returns how many frames were decoded.
func (v *FakeVideo) Calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}
