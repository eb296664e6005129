package video

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"sublint/internal/logging"
	"sublint/internal/media/ffprobe"
	"sublint/internal/services"
)

// Options configures the ffmpeg-backed source.
type Options struct {
	FFmpegBinary  string
	FFprobeBinary string
	// ProbeWidth is the width ffmpeg scales to before the final box downscale.
	ProbeWidth int
	Timeout    time.Duration
	Logger     *slog.Logger
}

// FFmpegSource reads frames by seeking with ffmpeg.
type FFmpegSource struct {
	path       string
	identity   string
	timestamps []int
	aspect     float64
	width      int
	height     int
	opts       Options
	logger     *slog.Logger
}

// Open probes the video and indexes its frame timestamps.
func Open(ctx context.Context, path string, opts Options) (*FFmpegSource, error) {
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if opts.ProbeWidth <= 0 {
		opts.ProbeWidth = 64
	}
	logger := logging.NewComponentLogger(opts.Logger, "video")

	identity, err := Identity(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "video", "open", "Video file unavailable", err)
	}

	probeCtx, cancel := withTimeout(ctx, opts.Timeout)
	defer cancel()
	result, err := ffprobe.Inspect(probeCtx, opts.FFprobeBinary, path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "video", "ffprobe", "Failed to inspect video", err)
	}
	stream, ok := result.VideoStream()
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "video", "ffprobe", "No video stream found", nil)
	}

	packetCtx, cancelPackets := withTimeout(ctx, opts.Timeout)
	defer cancelPackets()
	packets, err := ffprobe.FrameTimestamps(packetCtx, opts.FFprobeBinary, path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "video", "ffprobe packets", "Failed to index frames", err)
	}
	start, hasStart := result.StartMillis()
	origin := PresentationOrigin(start, hasStart, packets)
	timestamps := RebaseTimestamps(packets, origin)

	src := &FFmpegSource{
		path:       path,
		identity:   identity,
		timestamps: timestamps,
		aspect:     stream.PixelAspectRatio(),
		width:      stream.Width,
		height:     stream.Height,
		opts:       opts,
		logger:     logger,
	}
	logger.Info("video opened",
		logging.String("path", path),
		logging.Int("frames", len(timestamps)),
		logging.Int("start_ms", origin),
		logging.Int("width", stream.Width),
		logging.Int("height", stream.Height),
		logging.Float64("frame_rate", stream.FrameRate()),
		logging.Float64("pixel_aspect", src.aspect),
	)
	return src, nil
}

func (s *FFmpegSource) Identity() string { return s.identity }

func (s *FFmpegSource) AspectRatio() float64 { return s.aspect }

// Width returns the coded frame width.
func (s *FFmpegSource) Width() int { return s.width }

// Height returns the coded frame height.
func (s *FFmpegSource) Height() int { return s.height }

// FrameCount returns the number of indexed frames.
func (s *FFmpegSource) FrameCount() int { return len(s.timestamps) }

func (s *FFmpegSource) FrameIndexFromPTS(ms int) int {
	return IndexForPTS(s.timestamps, ms)
}

// Frame extracts a single frame as PNG and reduces it to the sample grid.
// An input -ss is measured from the container start, the same origin the
// timestamps were rebased onto.
func (s *FFmpegSource) Frame(ctx context.Context, index, width, height int) (Sample, error) {
	if index < 0 || index >= len(s.timestamps) {
		return nil, nil
	}
	seek := strconv.FormatFloat(float64(s.timestamps[index])/1000, 'f', 3, 64)
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", seek, "-i", s.path,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=%d:-2", s.opts.ProbeWidth),
		"-f", "image2pipe", "-vcodec", "png", "-",
	}

	frameCtx, cancel := withTimeout(ctx, s.opts.Timeout)
	defer cancel()
	cmd := exec.CommandContext(frameCtx, s.opts.FFmpegBinary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "video", "ffmpeg frame",
			fmt.Sprintf("Failed to extract frame %d", index),
			fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String())))
	}
	if stdout.Len() == 0 {
		return nil, nil
	}
	img, err := imaging.Decode(&stdout)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "video", "decode frame",
			fmt.Sprintf("Failed to decode frame %d", index), err)
	}
	s.logger.Debug("frame extracted",
		logging.Int("frame", index),
		logging.Duration("elapsed", time.Since(start)),
	)
	return SampleFromImage(imaging.Resize(img, width, height, imaging.Box)), nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
