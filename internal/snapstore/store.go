package snapstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
	_ "modernc.org/sqlite"

	"sublint/internal/services"
	"sublint/internal/snap"
	"sublint/internal/video"
)

// ErrLocked indicates another sublint process holds the cache.
var ErrLocked = errors.New("snap cache locked by another process")

// Store persists snap cache entries in SQLite. A sibling lock file keeps a
// single process writing at a time.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

var _ snap.Backend = (*Store)(nil)

// Open creates or opens the cache database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrTransient, "snapstore", "open", path, ErrLocked)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("open sqlite db: %w", err), lock.Unlock())
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			return nil, multierr.Combine(fmt.Errorf("apply pragma %q: %w", pragma, execErr), db.Close(), lock.Unlock())
		}
	}

	store := &Store{db: db, path: path, lock: lock}
	if err := store.initSchema(ctx); err != nil {
		return nil, multierr.Combine(err, db.Close(), lock.Unlock())
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the database and releases the lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return multierr.Combine(s.db.Close(), s.lock.Unlock())
}

func (s *Store) LoadFrame(ctx context.Context, key snap.FrameKey) (video.Sample, bool, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT sample FROM frame_samples WHERE identity = ? AND width = ? AND height = ? AND frame_index = ?",
		key.Identity, key.Width, key.Height, key.Index,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load frame: %w", err)
	}
	sample, err := decodeSample(blob)
	if err != nil {
		return nil, false, err
	}
	return sample, true, nil
}

func (s *Store) StoreFrame(ctx context.Context, key snap.FrameKey, sample video.Sample) error {
	var blob any
	if sample != nil {
		blob = encodeSample(sample)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO frame_samples (identity, width, height, frame_index, sample, created_at) VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(identity, width, height, frame_index) DO UPDATE SET sample = excluded.sample, created_at = excluded.created_at`,
		key.Identity, key.Width, key.Height, key.Index, blob, now(),
	)
	if err != nil {
		return fmt.Errorf("store frame: %w", err)
	}
	return nil
}

func (s *Store) LoadDecision(ctx context.Context, key snap.DecisionKey) (snap.Decision, bool, error) {
	var pivot sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT pivot FROM snap_decisions WHERE identity = ? AND tuning = ? AND pts = ?",
		key.Identity, key.Tuning, key.PTS,
	).Scan(&pivot)
	if errors.Is(err, sql.ErrNoRows) {
		return snap.Decision{}, false, nil
	}
	if err != nil {
		return snap.Decision{}, false, fmt.Errorf("load decision: %w", err)
	}
	return snap.Decision{Pivot: int(pivot.Int64), Found: pivot.Valid}, true, nil
}

func (s *Store) StoreDecision(ctx context.Context, key snap.DecisionKey, decision snap.Decision) error {
	var pivot any
	if decision.Found {
		pivot = decision.Pivot
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snap_decisions (identity, tuning, pts, pivot, created_at) VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(identity, tuning, pts) DO UPDATE SET pivot = excluded.pivot, created_at = excluded.created_at`,
		key.Identity, key.Tuning, key.PTS, pivot, now(),
	)
	if err != nil {
		return fmt.Errorf("store decision: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	for _, table := range []string{"frame_samples", "snap_decisions"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Stats summarizes cache contents.
type Stats struct {
	Videos    int
	Frames    int
	Decisions int
}

// Stats counts stored entries.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := s.db.QueryRowContext(ctx, `SELECT
        (SELECT COUNT(DISTINCT identity) FROM frame_samples),
        (SELECT COUNT(1) FROM frame_samples),
        (SELECT COUNT(1) FROM snap_decisions)`)
	if err := row.Scan(&stats.Videos, &stats.Frames, &stats.Decisions); err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// encodeSample packs channels as little-endian int16.
func encodeSample(sample video.Sample) []byte {
	buf := make([]byte, 2*len(sample))
	for i, v := range sample {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(v))
	}
	return buf
}

func decodeSample(blob []byte) (video.Sample, error) {
	if blob == nil {
		return nil, nil
	}
	if len(blob)%2 != 0 {
		return nil, fmt.Errorf("decode frame: odd sample length %d", len(blob))
	}
	sample := make(video.Sample, len(blob)/2)
	for i := range sample {
		sample[i] = int16(binary.LittleEndian.Uint16(blob[2*i:]))
	}
	return sample, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
