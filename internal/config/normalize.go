package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeVideo()
	c.normalizeSpelling()
	c.normalizeGrammar()
	c.normalizeFonts()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeVideo() {
	c.Video.FFmpegBinary = strings.TrimSpace(c.Video.FFmpegBinary)
	if c.Video.FFmpegBinary == "" {
		c.Video.FFmpegBinary = defaultFFmpegBinary
	}
	c.Video.FFprobeBinary = strings.TrimSpace(c.Video.FFprobeBinary)
	if c.Video.FFprobeBinary == "" {
		c.Video.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeSpelling() {
	c.Spelling.Language = strings.TrimSpace(c.Spelling.Language)
	if value, ok := os.LookupEnv("SUBLINT_SPELL_CHECK_LANG"); ok && c.Spelling.Language == "" {
		c.Spelling.Language = strings.TrimSpace(value)
	}
	if dir, err := expandPath(strings.TrimSpace(c.Spelling.DictionaryDir)); err == nil {
		c.Spelling.DictionaryDir = dir
	}
}

func (c *Config) normalizeGrammar() {
	c.Grammar.APIKey = strings.TrimSpace(c.Grammar.APIKey)
	if c.Grammar.APIKey == "" {
		for _, key := range []string{"SUBLINT_GRAMMAR_API_KEY", "OPENROUTER_API_KEY"} {
			if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
				c.Grammar.APIKey = strings.TrimSpace(value)
				break
			}
		}
	}
	if strings.TrimSpace(c.Grammar.BaseURL) == "" {
		c.Grammar.BaseURL = defaultGrammarBaseURL
	}
	if strings.TrimSpace(c.Grammar.Model) == "" {
		c.Grammar.Model = defaultGrammarModel
	}
}

func (c *Config) normalizeFonts() {
	c.Fonts.FCListBinary = strings.TrimSpace(c.Fonts.FCListBinary)
	if c.Fonts.FCListBinary == "" {
		c.Fonts.FCListBinary = defaultFCListBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
