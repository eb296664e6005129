package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "audio"},
			{CodecType: "video", AvgFrameRate: "24000/1001", SampleAspectRatio: "32:27"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	stream, ok := result.VideoStream()
	if !ok {
		t.Fatal("expected video stream")
	}
	if math.Abs(stream.FrameRate()-23.976) > 0.001 {
		t.Fatalf("unexpected frame rate: %v", stream.FrameRate())
	}
	if math.Abs(stream.PixelAspectRatio()-32.0/27.0) > 1e-9 {
		t.Fatalf("unexpected pixel aspect: %v", stream.PixelAspectRatio())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	stream := Stream{AvgFrameRate: "0/0", RFrameRate: "25/1", SampleAspectRatio: "0:1"}
	if stream.FrameRate() != 25 {
		t.Fatalf("expected fallback to r_frame_rate, got %v", stream.FrameRate())
	}
	if stream.PixelAspectRatio() != 1 {
		t.Fatalf("expected square pixels for 0:1, got %v", stream.PixelAspectRatio())
	}
}

func TestParseTimestamps(t *testing.T) {
	got, err := ParseTimestamps([]byte("0.083417\n0.000000\nN/A\n0.041708,\n\n"))
	if err != nil {
		t.Fatalf("ParseTimestamps: %v", err)
	}
	want := []int{0, 42, 83}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if _, err := ParseTimestamps([]byte("abc\n")); err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}

func TestStartMillis(t *testing.T) {
	cases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1.400000", 1400, true},
		{"0.000000", 0, true},
		{"-0.042000", -42, true},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, tc := range cases {
		got, ok := Result{Format: Format{StartTime: tc.raw}}.StartMillis()
		if got != tc.want || ok != tc.ok {
			t.Fatalf("StartMillis(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
