package testsupport

import (
	"path/filepath"
	"testing"

	"sublint/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Spelling.DictionaryDir = filepath.Join(base, "dictionaries")
	cfgVal.Grammar.APIKey = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGrammarKey sets the grammar API key on the test config.
func WithGrammarKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Grammar.APIKey = key
	}
}

// WithGrammarURL points the grammar client at a test server.
func WithGrammarURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Grammar.BaseURL = url
	}
}

// WithSpellingLanguage sets the fallback spell check language.
func WithSpellingLanguage(lang string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Spelling.Language = lang
	}
}

// WithFull enables the expensive check tier.
func WithFull() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Checks.Full = true
	}
}

// WithPersistentSnapCache toggles the SQLite snap cache.
func WithPersistentSnapCache(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Snap.PersistCache = enabled
	}
}
