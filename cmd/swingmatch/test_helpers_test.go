package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"swingmatch/internal/archive"
	"swingmatch/internal/config"
	"swingmatch/internal/motion"
	"swingmatch/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SWINGMATCH_EXTRACTOR", "")
	t.Setenv("SWINGMATCH_LOG_LEVEL", "")

	configPath := filepath.Join(homeDir, ".config", "swingmatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	quoted := make([]string, 0, len(cfg.Extractor.Args))
	for _, arg := range cfg.Extractor.Args {
		quoted = append(quoted, fmt.Sprintf("%q", arg))
	}
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
reference_dir = %q
keypoint_dir = %q

[extractor]
command = %q
args = [%s]
timeout_seconds = 30

[history]
enabled = %t

[logging]
level = "error"
`,
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Paths.ReferenceDir,
		cfg.Paths.KeypointDir,
		cfg.Extractor.Command,
		strings.Join(quoted, ", "),
		cfg.History.Enabled,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeMotion stores m under the env base directory and returns the path.
func (e *cliTestEnv) writeMotion(t *testing.T, name string, m motion.Motion) string {
	t.Helper()
	path := filepath.Join(e.baseDir, "motions", name)
	if err := archive.WriteFile(path, m); err != nil {
		t.Fatalf("write motion %s: %v", name, err)
	}
	return path
}

// installExtractor writes a shell extractor that copies fixture to the output
// path (its last argument) and points the config at it.
func (e *cliTestEnv) installExtractor(t *testing.T, fixture string) {
	t.Helper()
	script := filepath.Join(e.baseDir, "bin", "fake-pose")
	if err := os.MkdirAll(filepath.Dir(script), 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	body := fmt.Sprintf("#!/bin/sh\nfor last in \"$@\"; do :; done\ncp %q \"$last\"\n", fixture)
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write extractor: %v", err)
	}
	e.cfg.Extractor.Command = script
	writeTestConfig(t, e.configPath, e.cfg)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
