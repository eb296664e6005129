package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateSnap(); err != nil {
		return err
	}
	if err := c.validateGrammar(); err != nil {
		return err
	}
	if c.Fonts.CacheTTLHours <= 0 {
		return errors.New("fonts.cache_ttl_hours must be positive")
	}
	return c.validateLogging()
}

func (c *Config) validateVideo() error {
	if c.Video.ProbeWidth <= 0 {
		return errors.New("video.probe_width must be positive")
	}
	if c.Video.TimeoutSeconds <= 0 {
		return errors.New("video.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateSnap() error {
	if c.Snap.MaxDistance <= 0 {
		return errors.New("snap.max_distance must be positive")
	}
	if c.Snap.MinRGBDelta <= 0 || c.Snap.MinRGBDelta > 255 {
		return errors.New("snap.min_rgb_delta must be greater than 0 and at most 255")
	}
	if c.Snap.SampleWidth <= 0 || c.Snap.SampleHeight <= 0 {
		return errors.New("snap.sample_width and snap.sample_height must be positive")
	}
	if c.Snap.SampleWidth > c.Video.ProbeWidth {
		return fmt.Errorf("snap.sample_width (%d) must not exceed video.probe_width (%d)", c.Snap.SampleWidth, c.Video.ProbeWidth)
	}
	return nil
}

func (c *Config) validateGrammar() error {
	if c.Grammar.TimeoutSeconds <= 0 {
		return errors.New("grammar.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
