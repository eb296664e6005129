package snap

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"sublint/internal/logging"
	"sublint/internal/video"
)

const (
	DefaultMaxDistance  = 2
	DefaultMinRGBDelta  = 25
	DefaultSampleWidth  = 4
	DefaultSampleHeight = 3
)

// Options tunes the detector.
type Options struct {
	// MaxDistance is the farthest frame offset considered a pivot.
	MaxDistance int
	// MinRGBDelta is the mean per-channel difference that counts as a cut.
	MinRGBDelta  float64
	SampleWidth  int
	SampleHeight int
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MaxDistance:  DefaultMaxDistance,
		MinRGBDelta:  DefaultMinRGBDelta,
		SampleWidth:  DefaultSampleWidth,
		SampleHeight: DefaultSampleHeight,
	}
}

// Tuning fingerprints the options that shape a pivot decision.
func (o Options) Tuning() string {
	return fmt.Sprintf("d%d/t%s/%dx%d",
		o.MaxDistance, strconv.FormatFloat(o.MinRGBDelta, 'g', -1, 64), o.SampleWidth, o.SampleHeight)
}

// Detector finds the scene cut nearest to a timestamp.
type Detector struct {
	source video.Source
	cache  *Cache
	opts   Options
	logger *slog.Logger
}

// NewDetector builds a detector over source. A nil cache gets a private
// in-memory one; zero or negative option fields fall back to defaults.
func NewDetector(source video.Source, cache *Cache, opts Options, logger *slog.Logger) *Detector {
	defaults := DefaultOptions()
	if opts.MaxDistance <= 0 {
		opts.MaxDistance = defaults.MaxDistance
	}
	if opts.MinRGBDelta <= 0 {
		opts.MinRGBDelta = defaults.MinRGBDelta
	}
	if opts.SampleWidth <= 0 || opts.SampleHeight <= 0 {
		opts.SampleWidth, opts.SampleHeight = defaults.SampleWidth, defaults.SampleHeight
	}
	logger = logging.NewComponentLogger(logger, "snap")
	if cache == nil {
		cache = NewCache(nil, logger)
	}
	return &Detector{source: source, cache: cache, opts: opts, logger: logger}
}

// BestPivot returns the frame offset of the strongest cut within
// MaxDistance frames of pts. The pivot offset d means the cut lies between
// frames d-1 and d relative to the frame at pts.
func (d *Detector) BestPivot(ctx context.Context, pts int) (int, bool) {
	identity := d.source.Identity()
	key := DecisionKey{Identity: identity, Tuning: d.opts.Tuning(), PTS: pts}
	decision := d.cache.Decision(ctx, key, func() Decision {
		return d.computePivot(ctx, identity, pts)
	})
	return decision.Pivot, decision.Found
}

// Snaps reports whether pts has no pivot or sits exactly on one.
func (d *Detector) Snaps(ctx context.Context, pts int) bool {
	pivot, ok := d.BestPivot(ctx, pts)
	return !ok || pivot == 0
}

func (d *Detector) computePivot(ctx context.Context, identity string, pts int) Decision {
	frameIdx := d.source.FrameIndexFromPTS(pts)
	maxDist := d.opts.MaxDistance

	samples := make([]video.Sample, 0, 2*maxDist+1)
	for delta := -maxDist; delta <= maxDist; delta++ {
		samples = append(samples, d.frame(ctx, identity, frameIdx+delta))
	}

	best := Decision{}
	bestDiff := 0.0
	for i := 1; i < len(samples); i++ {
		prev, current := samples[i-1], samples[i]
		if prev == nil || current == nil {
			continue
		}
		diff, ok := MeanAbsDiff(prev, current)
		if !ok || diff < d.opts.MinRGBDelta {
			continue
		}
		delta := i - maxDist
		if !best.Found || preferPivot(delta, diff, best.Pivot, bestDiff) {
			best = Decision{Pivot: delta, Found: true}
			bestDiff = diff
		}
	}

	if best.Found {
		d.logger.Debug("pivot found",
			logging.Int("pts", pts),
			logging.Int("frame", frameIdx),
			logging.Int("pivot", best.Pivot),
			logging.Float64("diff", bestDiff),
		)
	}
	return best
}

func (d *Detector) frame(ctx context.Context, identity string, index int) video.Sample {
	if index < 0 {
		return nil
	}
	key := FrameKey{Identity: identity, Width: d.opts.SampleWidth, Height: d.opts.SampleHeight, Index: index}
	return d.cache.Frame(ctx, key, func() (video.Sample, error) {
		return d.source.Frame(ctx, index, d.opts.SampleWidth, d.opts.SampleHeight)
	})
}

// preferPivot orders candidates by larger diff, then smaller |offset|, then
// the negative offset.
func preferPivot(delta int, diff float64, bestDelta int, bestDiff float64) bool {
	if diff != bestDiff {
		return diff > bestDiff
	}
	da, db := abs(delta), abs(bestDelta)
	if da != db {
		return da < db
	}
	return delta < bestDelta
}

// MeanAbsDiff returns the mean absolute per-channel difference between two
// samples of equal size.
func MeanAbsDiff(a, b video.Sample) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var total float64
	for i := range a {
		total += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return total / float64(len(a)), true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
