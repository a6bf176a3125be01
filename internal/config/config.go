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

	"swingmatch/internal/deviation"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	ReferenceDir string `toml:"reference_dir"`
	KeypointDir  string `toml:"keypoint_dir"`
}

// Thresholds mirrors the deviation check limits.
type Thresholds struct {
	SwingPlane    float64 `toml:"swing_plane"`
	Head          float64 `toml:"head"`
	FrontFoot     float64 `toml:"front_foot"`
	BackFoot      float64 `toml:"back_foot"`
	FollowThrough float64 `toml:"follow_through"`
	Tempo         float64 `toml:"tempo"`
}

// Comparison contains engine tunables.
type Comparison struct {
	FrameCount int        `toml:"frame_count"`
	Parallel   bool       `toml:"parallel"`
	DTWWindow  int        `toml:"dtw_window"`
	Thresholds Thresholds `toml:"thresholds"`
}

// Extractor describes the external pose extraction command. It is invoked as
// `<command> <args...> <video> <output.npz>`.
type Extractor struct {
	Command        string   `toml:"command"`
	Args           []string `toml:"args"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
}

// History controls comparison persistence.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for swingmatch.
//
// Configuration sections by subsystem:
//   - Paths: data, log, reference library and keypoint directories
//   - Comparison: frame count, DTW band, parallelism and check thresholds
//   - Extractor: external pose extractor invocation
//   - History: comparison history database
//   - Logging: log format, level, and retention
type Config struct {
	Paths      Paths      `toml:"paths"`
	Comparison Comparison `toml:"comparison"`
	Extractor  Extractor  `toml:"extractor"`
	History    History    `toml:"history"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load finds the configuration file, decodes it over Default(), normalizes
// paths and env overrides, and validates the result. It also returns the
// resolved path and whether a file existed there; a missing file is not an
// error and yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

// decodeFile rejects unknown keys so a misspelled threshold does not silently
// fall back to its default.
func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file).DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("parse config %s: %s", path, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath honours an explicit path even when the file is missing.
// Otherwise the user config is preferred over ./swingmatch.toml, and the user
// config location is reported when neither exists.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		switch _, err := os.Stat(expanded); {
		case err == nil:
			return expanded, true, nil
		case errors.Is(err, fs.ErrNotExist):
			return expanded, false, nil
		default:
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

// EnsureDirectories creates the data, log, reference and keypoint directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.ReferenceDir, c.Paths.KeypointDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the comparison history database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, historyDatabaseName)
}

// ExtractorTimeout returns the extractor deadline.
func (c *Config) ExtractorTimeout() time.Duration {
	return time.Duration(c.Extractor.TimeoutSeconds) * time.Second
}

// DeviationThresholds converts the configured limits for the deviation checks.
func (c *Config) DeviationThresholds() deviation.Thresholds {
	t := c.Comparison.Thresholds
	return deviation.Thresholds{
		SwingPlane:    t.SwingPlane,
		Head:          t.Head,
		FrontFoot:     t.FrontFoot,
		BackFoot:      t.BackFoot,
		FollowThrough: t.FollowThrough,
		Tempo:         t.Tempo,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		pathValue = filepath.Join(home, strings.TrimPrefix(pathValue[1:], "/"))
	}
	absolute, err := filepath.Abs(pathValue)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath resolves a leading "~/" against the home directory and makes
// the result absolute. Command arguments go through it so they match the
// paths stored in the configuration.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes the commented sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
