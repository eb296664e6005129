package ffprobe

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"sort"
	"strconv"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index              int    `json:"index"`
	CodecName          string `json:"codec_name"`
	CodecType          string `json:"codec_type"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	RFrameRate         string `json:"r_frame_rate"`
	AvgFrameRate       string `json:"avg_frame_rate"`
	SampleAspectRatio  string `json:"sample_aspect_ratio"`
	DisplayAspectRatio string `json:"display_aspect_ratio"`
	NBFrames           string `json:"nb_frames"`
	StartTime          string `json:"start_time"`
	Duration           string `json:"duration"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	StartTime  string `json:"start_time"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = defaultBinary(binary)
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	return result, nil
}

// FrameTimestamps lists absolute presentation timestamps of the first video
// stream in milliseconds, sorted ascending. Packets are read without
// decoding.
func FrameTimestamps(ctx context.Context, binary string, path string) ([]int, error) {
	binary = defaultBinary(binary)
	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-select_streams", "v:0",
		"-show_entries", "packet=pts_time", "-of", "csv=p=0", "--", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe packets: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return ParseTimestamps(output)
}

// ParseTimestamps parses one pts_time per line, skipping N/A entries.
func ParseTimestamps(output []byte) ([]int, error) {
	var out []int
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(scanner.Text()), ","))
		if line == "" || line == "N/A" {
			continue
		}
		seconds, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("ffprobe packets: bad timestamp %q", line)
		}
		out = append(out, int(math.Round(seconds*1000)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ffprobe packets: %w", err)
	}
	sort.Ints(out)
	return out, nil
}

// VideoStream returns the first video stream.
func (r Result) VideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// VideoStreamCount returns the number of video streams discovered.
func (r Result) VideoStreamCount() int {
	count := 0
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			count++
		}
	}
	return count
}

// DurationSeconds returns the container duration in seconds, or 0 when unavailable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// StartMillis returns the container start time in milliseconds. ok is false
// when ffprobe reports none.
func (r Result) StartMillis() (int, bool) {
	seconds := parseFloat(r.Format.StartTime)
	if strings.TrimSpace(r.Format.StartTime) == "" || math.IsNaN(seconds) {
		return 0, false
	}
	return int(math.Round(seconds * 1000)), true
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// FrameRate returns the stream frame rate, preferring avg_frame_rate.
func (s Stream) FrameRate() float64 {
	for _, raw := range []string{s.AvgFrameRate, s.RFrameRate} {
		if v := parseRatio(raw, "/"); v > 0 {
			return v
		}
	}
	return 0
}

// PixelAspectRatio returns the sample aspect ratio, 1 when unset.
func (s Stream) PixelAspectRatio() float64 {
	if v := parseRatio(s.SampleAspectRatio, ":"); v > 0 {
		return v
	}
	return 1
}

func parseRatio(raw, sep string) float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(raw), sep)
	if !ok {
		return 0
	}
	n, errN := strconv.ParseFloat(num, 64)
	d, errD := strconv.ParseFloat(den, 64)
	if errN != nil || errD != nil || n <= 0 || d <= 0 {
		return 0
	}
	return n / d
}

func defaultBinary(binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return "ffprobe"
	}
	return binary
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}
