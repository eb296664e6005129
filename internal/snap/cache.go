package snap

import (
	"context"
	"log/slog"
	"sync"

	"sublint/internal/logging"
	"sublint/internal/video"
)

// Decision is a cached pivot lookup. Found is false when no pivot exists.
type Decision struct {
	Pivot int
	Found bool
}

// FrameKey identifies one frame of a video sampled at one grid size.
type FrameKey struct {
	Identity string
	Width    int
	Height   int
	Index    int
}

// DecisionKey identifies the pivot lookup at pts under one detector tuning.
type DecisionKey struct {
	Identity string
	Tuning   string
	PTS      int
}

// Backend persists cache entries across runs.
type Backend interface {
	LoadFrame(ctx context.Context, key FrameKey) (sample video.Sample, found bool, err error)
	StoreFrame(ctx context.Context, key FrameKey, sample video.Sample) error
	LoadDecision(ctx context.Context, key DecisionKey) (decision Decision, found bool, err error)
	StoreDecision(ctx context.Context, key DecisionKey, decision Decision) error
	Clear(ctx context.Context) error
}

// Cache holds frame samples keyed by FrameKey and pivot decisions keyed by
// DecisionKey. A nil sample records an absent frame.
type Cache struct {
	mu        sync.RWMutex
	frames    map[FrameKey]video.Sample
	decisions map[DecisionKey]Decision
	backend   Backend
	logger    *slog.Logger
}

// NewCache creates an in-memory cache, optionally backed by persistent storage.
func NewCache(backend Backend, logger *slog.Logger) *Cache {
	return &Cache{
		frames:    make(map[FrameKey]video.Sample),
		decisions: make(map[DecisionKey]Decision),
		backend:   backend,
		logger:    logging.NewComponentLogger(logger, "snap-cache"),
	}
}

// Frame returns the cached sample or calls load on a miss. Load errors are
// logged and recorded as an absent sample for the rest of the run.
func (c *Cache) Frame(ctx context.Context, key FrameKey, load func() (video.Sample, error)) video.Sample {
	c.mu.RLock()
	sample, ok := c.frames[key]
	c.mu.RUnlock()
	if ok {
		return sample
	}

	if c.backend != nil {
		stored, found, err := c.backend.LoadFrame(ctx, key)
		if err != nil {
			c.logger.Warn("snap cache read failed; continuing without persisted frame",
				logging.Int("frame", key.Index),
				logging.Error(err),
				logging.String(logging.FieldEventType, "snap_cache_read_failed"),
				logging.String(logging.FieldErrorHint, "run sublint cache clear if the cache file is damaged"),
			)
		} else if found {
			c.put(key, stored)
			return stored
		}
	}

	sample, err := load()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.logger.Warn("frame sample unavailable",
			logging.Int("frame", key.Index),
			logging.Error(err),
			logging.String(logging.FieldEventType, "frame_sample_failed"),
			logging.String(logging.FieldImpact, "offset ignored when searching for a scene boundary"),
		)
		c.put(key, nil)
		return nil
	}
	c.put(key, sample)
	if c.backend != nil {
		if err := c.backend.StoreFrame(ctx, key, sample); err != nil {
			c.logger.Debug("snap cache write failed", logging.Int("frame", key.Index), logging.Error(err))
		}
	}
	return sample
}

func (c *Cache) put(key FrameKey, sample video.Sample) {
	c.mu.Lock()
	c.frames[key] = sample
	c.mu.Unlock()
}

// Decision returns the cached decision or calls compute on a miss. Decisions
// computed while ctx is cancelled are returned but not stored.
func (c *Cache) Decision(ctx context.Context, key DecisionKey, compute func() Decision) Decision {
	c.mu.RLock()
	decision, ok := c.decisions[key]
	c.mu.RUnlock()
	if ok {
		return decision
	}

	if c.backend != nil {
		stored, found, err := c.backend.LoadDecision(ctx, key)
		if err != nil {
			c.logger.Debug("snap cache decision read failed", logging.Int("pts", key.PTS), logging.Error(err))
		} else if found {
			c.mu.Lock()
			c.decisions[key] = stored
			c.mu.Unlock()
			return stored
		}
	}

	decision = compute()
	if ctx.Err() != nil {
		return decision
	}
	c.mu.Lock()
	c.decisions[key] = decision
	c.mu.Unlock()
	if c.backend != nil {
		if err := c.backend.StoreDecision(ctx, key, decision); err != nil {
			c.logger.Debug("snap cache decision write failed", logging.Int("pts", key.PTS), logging.Error(err))
		}
	}
	return decision
}

// Len reports the number of in-memory frame and decision entries.
func (c *Cache) Len() (frames, decisions int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames), len(c.decisions)
}

// Clear drops in-memory entries and the persistent backend, if any.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.frames = make(map[FrameKey]video.Sample)
	c.decisions = make(map[DecisionKey]Decision)
	c.mu.Unlock()
	if c.backend == nil {
		return nil
	}
	return c.backend.Clear(ctx)
}
