package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains cache and log directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Checks selects which checks run.
type Checks struct {
	// Full enables the expensive tier (scene-boundary timing, grammar).
	Full bool `toml:"full"`
	// Disabled lists check names that never run.
	Disabled []string `toml:"disabled"`
}

// Video contains configuration for frame extraction.
type Video struct {
	FFmpegBinary  string `toml:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary"`
	// ProbeWidth is the width ffmpeg scales frames to before the final
	// downscale to the sample grid.
	ProbeWidth     int `toml:"probe_width"`
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Snap contains scene-boundary detector tuning.
type Snap struct {
	MaxDistance  int     `toml:"max_distance"`
	MinRGBDelta  float64 `toml:"min_rgb_delta"`
	SampleWidth  int     `toml:"sample_width"`
	SampleHeight int     `toml:"sample_height"`
	// PersistCache stores frame samples and decisions in cache_dir across runs.
	PersistCache bool `toml:"persist_cache"`
}

// Spelling contains spell check configuration.
type Spelling struct {
	// Language is used when the document does not declare one.
	Language string `toml:"language"`
	// DictionaryDir holds <lang>.dic word lists.
	DictionaryDir string `toml:"dictionary_dir"`
}

// Grammar contains the LLM connection used by the grammar check.
type Grammar struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	Referer        string `toml:"referer"`
	Title          string `toml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Fonts configures the installed font lookup.
type Fonts struct {
	FCListBinary  string `toml:"fc_list_binary"`
	CacheTTLHours int    `toml:"cache_ttl_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sublint.
//
// Configuration sections by subsystem:
//   - Paths: cache and log directories
//   - Checks: check tier selection and opt-outs
//   - Video: ffmpeg/ffprobe binaries and frame extraction
//   - Snap: scene-boundary detector tuning and persistence
//   - Spelling: spell check language and dictionaries
//   - Grammar: LLM settings for grammar suggestions
//   - Fonts: fc-list binary and font list caching
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Checks   Checks   `toml:"checks"`
	Video    Video    `toml:"video"`
	Snap     Snap     `toml:"snap"`
	Spelling Spelling `toml:"spelling"`
	Grammar  Grammar  `toml:"grammar"`
	Fonts    Fonts    `toml:"fonts"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sublint.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the cache directory when persistence is enabled.
func (c *Config) EnsureDirectories() error {
	if !c.Snap.PersistCache {
		return nil
	}
	if err := os.MkdirAll(c.Paths.CacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache directory %q: %w", c.Paths.CacheDir, err)
	}
	return nil
}

// SnapCachePath returns the SQLite database holding persisted snap data.
func (c *Config) SnapCachePath() string {
	return filepath.Join(c.Paths.CacheDir, "snap_cache.db")
}

// FontCachePath returns the JSON file caching installed font families, or
// "" when persistence is off.
func (c *Config) FontCachePath() string {
	if !c.Snap.PersistCache {
		return ""
	}
	return filepath.Join(c.Paths.CacheDir, "fonts.json")
}

// FontCacheTTL returns how long a cached font list is trusted.
func (c *Config) FontCacheTTL() time.Duration {
	return time.Duration(c.Fonts.CacheTTLHours) * time.Hour
}

// VideoTimeout returns the per-invocation ffmpeg/ffprobe timeout.
func (c *Config) VideoTimeout() time.Duration {
	return time.Duration(c.Video.TimeoutSeconds) * time.Second
}

// CheckEnabled reports whether the named check was not opted out.
func (c *Config) CheckEnabled(name string) bool {
	for _, disabled := range c.Checks.Disabled {
		if strings.EqualFold(strings.TrimSpace(disabled), name) {
			return false
		}
	}
	return true
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "sublint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/sublint"
	}
	return filepath.Join(home, ".cache", "sublint")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
