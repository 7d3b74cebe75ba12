package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.StagingDir) == "" {
		return fmt.Errorf("config: staging_dir is required")
	}
	if c.Speech.RateWPM <= 0 {
		return fmt.Errorf("config: rate_wpm must be positive, got %d", c.Speech.RateWPM)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: sample_rate must be positive, got %d", c.Audio.SampleRate)
	}
	if c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return fmt.Errorf("config: channels must be 1 or 2, got %d", c.Audio.Channels)
	}
	if c.Audio.MinClipBytes <= 0 {
		return fmt.Errorf("config: min_clip_bytes must be positive, got %d", c.Audio.MinClipBytes)
	}
	if c.Audio.MinClipMillis <= 0 {
		return fmt.Errorf("config: min_clip_millis must be positive, got %d", c.Audio.MinClipMillis)
	}
	if c.Audio.TrailingSilenceMillis < 0 {
		return fmt.Errorf("config: trailing_silence_millis must not be negative, got %d", c.Audio.TrailingSilenceMillis)
	}
	if strings.TrimSpace(c.Audio.Bitrate) == "" {
		return fmt.Errorf("config: bitrate is required")
	}
	if c.Output.Suffix == "" {
		return fmt.Errorf("config: output suffix is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "auto", "console", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Logging.Format)
	}
	if c.Notifications.RequestTimeout < 0 {
		return fmt.Errorf("config: notification request_timeout must not be negative, got %d", c.Notifications.RequestTimeout)
	}
	return nil
}
