package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"swingmatch/internal/config"
)

// ConfigOption adjusts the configuration built by NewConfig.
type ConfigOption func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns the default configuration with every directory moved
// under a fresh t.TempDir. Options run in order after the defaults.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.Paths{
		DataDir:      filepath.Join(base, "data"),
		LogDir:       filepath.Join(base, "logs"),
		ReferenceDir: filepath.Join(base, "references"),
		KeypointDir:  filepath.Join(base, "keypoints"),
	}
	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// BaseDir returns the temp directory that holds every path of a NewConfig result.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// WithExtractor points the config at a different extractor command.
func WithExtractor(command string, args ...string) ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.Extractor.Command = command
		cfg.Extractor.Args = args
	}
}

// WithHistoryDisabled turns off comparison history.
func WithHistoryDisabled() ConfigOption {
	return func(_ testing.TB, _ string, cfg *config.Config) {
		cfg.History.Enabled = false
	}
}

// WithStubbedBinaries installs do-nothing executables under base/bin and puts
// that directory first on PATH for the rest of the test. With no names the
// configured extractor command is stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(t testing.TB, base string, cfg *config.Config) {
		t.Helper()
		if len(names) == 0 {
			names = []string{cfg.Extractor.Command}
		}
		binDir := filepath.Join(base, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			t.Fatalf("mkdir bin dir: %v", err)
		}
		for _, name := range names {
			if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
				t.Fatalf("write stub %s: %v", name, err)
			}
		}
		t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}
