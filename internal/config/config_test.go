package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sublint/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("SUBLINT_GRAMMAR_API_KEY", "env-key")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	wantCache := filepath.Join(tempHome, ".cache", "sublint")
	if cfg.Paths.CacheDir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Paths.CacheDir, wantCache)
	}
	if cfg.Grammar.APIKey != "env-key" {
		t.Fatalf("expected grammar key from env, got %q", cfg.Grammar.APIKey)
	}
	if cfg.Snap.MaxDistance != 2 || cfg.Snap.MinRGBDelta != 25 {
		t.Fatalf("unexpected snap defaults: %+v", cfg.Snap)
	}
	if cfg.Checks.Full {
		t.Fatal("expected cheap tier only by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(cfg.Paths.CacheDir); err != nil || !info.IsDir() {
		t.Fatalf("expected cache dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.toml")
	body := `
[checks]
full = true
disabled = ["Grammar"]

[snap]
max_distance = 3
min_rgb_delta = 30.0

[logging]
format = "JSON"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected custom path to resolve, got %q exists=%v", resolved, exists)
	}
	if !cfg.Checks.Full {
		t.Fatal("expected full tier enabled")
	}
	if cfg.CheckEnabled("grammar") {
		t.Fatal("expected grammar disabled case-insensitively")
	}
	if !cfg.CheckEnabled("quotes") {
		t.Fatal("expected quotes enabled")
	}
	if cfg.Snap.MaxDistance != 3 || cfg.Snap.MinRGBDelta != 30 {
		t.Fatalf("unexpected snap settings: %+v", cfg.Snap)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized log format, got %q", cfg.Logging.Format)
	}
	if cfg.Snap.SampleWidth != 4 {
		t.Fatalf("expected untouched defaults to survive, got %d", cfg.Snap.SampleWidth)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[snap]\nmax_distanse = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "min_rgb_delta") {
		t.Fatalf("sample config missing snap section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Snap.MaxDistance != 2 {
		t.Fatalf("unexpected sample max distance %d", cfg.Snap.MaxDistance)
	}
	if cfg.Fonts.CacheTTLHours != 24 {
		t.Fatalf("unexpected sample font cache ttl %d", cfg.Fonts.CacheTTLHours)
	}
	if !strings.Contains(cfg.Paths.CacheDir, "sublint") {
		t.Fatalf("expected cache dir to contain sublint, got %q", cfg.Paths.CacheDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"max distance":   func(c *config.Config) { c.Snap.MaxDistance = 0 },
		"rgb delta":      func(c *config.Config) { c.Snap.MinRGBDelta = 300 },
		"zero rgb delta": func(c *config.Config) { c.Snap.MinRGBDelta = 0 },
		"sample grid":    func(c *config.Config) { c.Snap.SampleHeight = 0 },
		"sample > probe": func(c *config.Config) { c.Snap.SampleWidth = 128 },
		"video timeout":  func(c *config.Config) { c.Video.TimeoutSeconds = 0 },
		"grammar":        func(c *config.Config) { c.Grammar.TimeoutSeconds = -1 },
		"font ttl":       func(c *config.Config) { c.Fonts.CacheTTLHours = 0 },
		"log format":     func(c *config.Config) { c.Logging.Format = "xml" },
		"log level":      func(c *config.Config) { c.Logging.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error for %s", name)
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}
