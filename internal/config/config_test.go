package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"swingmatch/internal/config"
	"swingmatch/internal/deviation"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "swingmatch", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "swingmatch")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "history.db") {
		t.Fatalf("unexpected database path %q", cfg.DatabasePath())
	}
	if cfg.Comparison.FrameCount != 316 {
		t.Fatalf("unexpected frame count %d", cfg.Comparison.FrameCount)
	}
	if cfg.DeviationThresholds() != deviation.DefaultThresholds() {
		t.Fatalf("default thresholds diverge: %+v", cfg.DeviationThresholds())
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir, cfg.Paths.ReferenceDir, cfg.Paths.KeypointDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "swingmatch.toml")

	type payload struct {
		Paths struct {
			ReferenceDir string `toml:"reference_dir"`
		} `toml:"paths"`
		Comparison struct {
			FrameCount int  `toml:"frame_count"`
			Parallel   bool `toml:"parallel"`
			DTWWindow  int  `toml:"dtw_window"`
			Thresholds struct {
				Head float64 `toml:"head"`
			} `toml:"thresholds"`
		} `toml:"comparison"`
	}
	custom := payload{}
	custom.Paths.ReferenceDir = filepath.Join(tempDir, "refs")
	custom.Comparison.FrameCount = 128
	custom.Comparison.Parallel = true
	custom.Comparison.DTWWindow = 12
	custom.Comparison.Thresholds.Head = 0.05
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.ReferenceDir != custom.Paths.ReferenceDir {
		t.Fatalf("expected reference dir override, got %q", cfg.Paths.ReferenceDir)
	}
	if cfg.Comparison.FrameCount != 128 || !cfg.Comparison.Parallel || cfg.Comparison.DTWWindow != 12 {
		t.Fatalf("unexpected comparison section %+v", cfg.Comparison)
	}
	th := cfg.DeviationThresholds()
	if th.Head != 0.05 {
		t.Fatalf("expected head threshold override, got %v", th.Head)
	}
	if th.Tempo != 0.02 {
		t.Fatalf("expected untouched tempo default, got %v", th.Tempo)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "swingmatch.toml")
	if err := os.WriteFile(configPath, []byte("[comparison]\nframes = 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "frames") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "swingmatch.toml")
	contents := "[extractor]\ncommand = \"file-extractor\"\n\n[logging]\nlevel = \"info\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SWINGMATCH_EXTRACTOR", "/opt/pose/bin/extract")
	t.Setenv("SWINGMATCH_LOG_LEVEL", "DEBUG")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Extractor.Command != "/opt/pose/bin/extract" {
		t.Errorf("expected extractor from env, got %q", cfg.Extractor.Command)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected lowercased log level from env, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config must load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Comparison.Thresholds != defaults.Comparison.Thresholds {
		t.Fatalf("sample thresholds %+v differ from defaults %+v", cfg.Comparison.Thresholds, defaults.Comparison.Thresholds)
	}
	if cfg.Comparison.FrameCount != defaults.Comparison.FrameCount {
		t.Fatalf("sample frame count %d differs from default", cfg.Comparison.FrameCount)
	}
	if !strings.Contains(cfg.Paths.ReferenceDir, "swingmatch") {
		t.Fatalf("expected reference dir to contain swingmatch, got %q", cfg.Paths.ReferenceDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Comparison.FrameCount = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive frame count")
	}

	cfg = config.Default()
	cfg.Comparison.DTWWindow = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative dtw window")
	}

	cfg = config.Default()
	cfg.Comparison.Thresholds.Tempo = -0.1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative threshold")
	}

	cfg = config.Default()
	cfg.Extractor.TimeoutSeconds = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive extractor timeout")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}
