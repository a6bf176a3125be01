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
	c.normalizeExtractor()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.data_dir", &c.Paths.DataDir, defaultDataDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
		{"paths.reference_dir", &c.Paths.ReferenceDir, defaultReferenceDir},
		{"paths.keypoint_dir", &c.Paths.KeypointDir, defaultKeypointDir},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.value) == "" {
			*f.value = f.fallback
		}
		expanded, err := expandPath(strings.TrimSpace(*f.value))
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.value = expanded
	}
	return nil
}

func (c *Config) normalizeExtractor() {
	if value, ok := os.LookupEnv(envExtractorCommand); ok && strings.TrimSpace(value) != "" {
		c.Extractor.Command = value
	}
	c.Extractor.Command = strings.TrimSpace(c.Extractor.Command)
	if c.Extractor.Command == "" {
		c.Extractor.Command = defaultExtractorCommand
	}
	args := c.Extractor.Args[:0]
	for _, arg := range c.Extractor.Args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			args = append(args, trimmed)
		}
	}
	c.Extractor.Args = args
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
