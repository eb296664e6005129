package fonts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"sublint/internal/logging"
	"sublint/internal/services"
)

// DefaultTTL bounds how long a persisted family list is trusted.
const DefaultTTL = 24 * time.Hour

var folder = cases.Fold()

// snapshot is the on-disk cache format.
type snapshot struct {
	Families []string  `json:"families"`
	CachedAt time.Time `json:"cached_at"`
}

// Catalog answers whether font families are installed, backed by fc-list
// and a JSON cache file.
type Catalog struct {
	binary string
	path   string
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	families map[string]string // folded name -> display name
	cachedAt time.Time
}

// NewCatalog creates a catalog. An empty path keeps results in memory only.
func NewCatalog(binary, path string, ttl time.Duration, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(binary) == "" {
		binary = "fc-list"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Catalog{
		binary: binary,
		path:   path,
		ttl:    ttl,
		logger: logging.NewComponentLogger(logger, "fonts"),
		now:    time.Now,
	}
	if path == "" {
		return c
	}
	if err := c.load(); err != nil {
		c.logger.Warn("failed to load font cache",
			logging.String(logging.FieldEventType, "font_cache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run sublint cache clear if the file is corrupt"),
			logging.String(logging.FieldImpact, "fc-list will be queried again"))
	}
	return c
}

// Has reports whether family is installed. Matching ignores case.
func (c *Catalog) Has(ctx context.Context, family string) (bool, error) {
	if err := c.ensure(ctx); err != nil {
		return false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.families[Key(family)]
	return ok, nil
}

// Families returns the installed families sorted by name.
func (c *Catalog) Families(ctx context.Context) ([]string, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.families))
	for _, name := range c.families {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Count returns the number of known families without querying fc-list.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.families)
}

// Clear drops the in-memory list and removes the cache file.
func (c *Catalog) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.families = nil
	c.cachedAt = time.Time{}
	if c.path == "" {
		return nil
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove font cache: %w", err)
	}
	c.logger.Debug("cleared font cache", logging.String("path", c.path))
	return nil
}

func (c *Catalog) ensure(ctx context.Context) error {
	c.mu.RLock()
	fresh := c.families != nil && c.now().Sub(c.cachedAt) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return nil
	}

	output, err := c.query(ctx)
	if err != nil {
		return err
	}
	families := ParseFCList(output)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setFamilies(families, c.now())
	c.logger.Debug("queried installed fonts",
		logging.Int("family_count", len(c.families)),
		logging.String("binary", c.binary))
	if c.path == "" {
		return nil
	}
	if err := c.save(); err != nil {
		logging.WarnWithContext(c.logger, "failed to persist font cache", "font_cache_save_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "fc-list will be queried again next run"))
	}
	return nil
}

func (c *Catalog) query(ctx context.Context) ([]byte, error) {
	if _, err := exec.LookPath(c.binary); err != nil {
		return nil, services.Wrap(services.ErrNotFound, "fonts", "lookup", fmt.Sprintf("%s not found", c.binary), err)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, ":", "family") //nolint:gosec
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "fonts", "fc-list", strings.TrimSpace(stderr.String()), err)
	}
	return output, nil
}

func (c *Catalog) setFamilies(families []string, at time.Time) {
	c.families = make(map[string]string, len(families))
	for _, family := range families {
		c.families[folder.String(family)] = family
	}
	c.cachedAt = at
}

func (c *Catalog) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}
	c.setFamilies(snap.Families, snap.CachedAt)
	c.logger.Debug("loaded font cache",
		logging.Int("family_count", len(c.families)),
		logging.String("path", c.path))
	return nil
}

// save writes the cache atomically. Callers hold the write lock.
func (c *Catalog) save() error {
	snap := snapshot{CachedAt: c.cachedAt, Families: make([]string, 0, len(c.families))}
	for _, name := range c.families {
		snap.Families = append(snap.Families, name)
	}
	sort.Strings(snap.Families)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// ParseFCList extracts family names from `fc-list : family` output. Each line
// may list several comma-separated names; fontconfig escapes '-', ',' and '\'
// with a backslash.
func ParseFCList(output []byte) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, line := range strings.Split(string(output), "\n") {
		for _, name := range splitEscaped(strings.TrimSpace(line)) {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			key := folder.String(name)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func splitEscaped(line string) []string {
	var parts []string
	var current strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(parts, current.String())
}

// FamilyName strips the vertical-writing "@" prefix from an ASS font name.
func FamilyName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "@"))
}

// Key returns the case-folded lookup key for a family name.
func Key(name string) string {
	return folder.String(FamilyName(name))
}
