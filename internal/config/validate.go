package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateComparison(); err != nil {
		return err
	}
	if err := c.validateExtractor(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateComparison() error {
	if c.Comparison.FrameCount < 1 {
		return errors.New("comparison.frame_count must be positive")
	}
	if c.Comparison.DTWWindow < 0 {
		return errors.New("comparison.dtw_window must be >= 0 (0 disables the band)")
	}
	t := c.Comparison.Thresholds
	return ensureNonNegative(map[string]float64{
		"comparison.thresholds.swing_plane":    t.SwingPlane,
		"comparison.thresholds.head":           t.Head,
		"comparison.thresholds.front_foot":     t.FrontFoot,
		"comparison.thresholds.back_foot":      t.BackFoot,
		"comparison.thresholds.follow_through": t.FollowThrough,
		"comparison.thresholds.tempo":          t.Tempo,
	})
}

func (c *Config) validateExtractor() error {
	if strings.TrimSpace(c.Extractor.Command) == "" {
		return errors.New("extractor.command must be set (or set " + envExtractorCommand + ")")
	}
	if c.Extractor.TimeoutSeconds <= 0 {
		return errors.New("extractor.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensureNonNegative(values map[string]float64) error {
	for key, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			return fmt.Errorf("%s must be a non-negative number", key)
		}
	}
	return nil
}
