package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"swingmatch/internal/archive"
	"swingmatch/internal/motion"
	"swingmatch/internal/services"
	"swingmatch/internal/testsupport"
)

func useHelper(t *testing.T, mode string) *[]string {
	t.Helper()
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		helperArgs := append([]string{"-test.run=TestHelperProcess", "--"}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], helperArgs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "EXTRACTOR_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
	return &captured
}

func writeVideo(t *testing.T) string {
	t.Helper()
	return testsupport.WriteVideo(t, filepath.Join(t.TempDir(), "session"), "swing.mp4")
}

func TestExtractSuccess(t *testing.T) {
	captured := useHelper(t, "success")
	video := writeVideo(t)
	output := filepath.Join(t.TempDir(), "keypoints", "coverdrive_swing.npz")

	cli := NewCLI("pose-extractor", WithArgs("--model", "heavy"))
	m, err := cli.Extract(context.Background(), video, output)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(m) != 12 {
		t.Fatalf("expected 12 frames, got %d", len(m))
	}
	if len(m[0]) != motion.JointCount {
		t.Fatalf("expected %d joints, got %d", motion.JointCount, len(m[0]))
	}

	want := []string{"pose-extractor", "--model", "heavy", video, output}
	if fmt.Sprint(*captured) != fmt.Sprint(want) {
		t.Fatalf("unexpected command line %v, want %v", *captured, want)
	}
}

func TestExtractNoPoseExitCode(t *testing.T) {
	useHelper(t, "nopose")
	video := writeVideo(t)
	_, err := NewCLI("pose-extractor").Extract(context.Background(), video, filepath.Join(t.TempDir(), "out.npz"))
	if !errors.Is(err, ErrNoPoseDetected) {
		t.Fatalf("expected ErrNoPoseDetected, got %v", err)
	}
	if !errors.Is(err, motion.ErrInvalidInput) {
		t.Fatalf("expected no-pose to classify as invalid input, got %v", err)
	}
}

func TestExtractEmptyArchive(t *testing.T) {
	useHelper(t, "empty")
	video := writeVideo(t)
	_, err := NewCLI("pose-extractor").Extract(context.Background(), video, filepath.Join(t.TempDir(), "out.json"))
	if !errors.Is(err, ErrNoPoseDetected) {
		t.Fatalf("expected ErrNoPoseDetected for zero frames, got %v", err)
	}
}

func TestExtractFailureIncludesOutputTail(t *testing.T) {
	useHelper(t, "fail")
	video := writeVideo(t)
	_, err := NewCLI("pose-extractor").Extract(context.Background(), video, filepath.Join(t.TempDir(), "out.npz"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "model weights missing") {
		t.Fatalf("expected stderr tail in error, got %q", got)
	}
}

func TestExtractMissingArchive(t *testing.T) {
	useHelper(t, "noop")
	video := writeVideo(t)
	_, err := NewCLI("pose-extractor").Extract(context.Background(), video, filepath.Join(t.TempDir(), "out.npz"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool when no archive is written, got %v", err)
	}
}

func TestExtractTimeout(t *testing.T) {
	useHelper(t, "hang")
	video := writeVideo(t)
	cli := NewCLI("pose-extractor", WithTimeout(200*time.Millisecond))
	_, err := cli.Extract(context.Background(), video, filepath.Join(t.TempDir(), "out.npz"))
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestExtractInputErrors(t *testing.T) {
	useHelper(t, "success")
	cli := NewCLI("pose-extractor")

	_, err := cli.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), filepath.Join(t.TempDir(), "out.npz"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing video, got %v", err)
	}

	_, err = NewCLI("  ").Extract(context.Background(), writeVideo(t), filepath.Join(t.TempDir(), "out.npz"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for empty command, got %v", err)
	}

	_, err = cli.Extract(context.Background(), writeVideo(t), "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty output, got %v", err)
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		shot  string
		video string
		want  string
	}{
		{"coverdrive", "/videos/net session.mp4", "coverdrive_net_session.npz"},
		{"", "/data/pull/clip01.MOV", "pull_clip01.npz"},
		{"Hook Shot", "clip.mp4", "hook_shot_clip.npz"},
	}
	for _, tt := range tests {
		if got := ArchiveName(tt.shot, tt.video); got != tt.want {
			t.Fatalf("ArchiveName(%q, %q) = %q, want %q", tt.shot, tt.video, got, tt.want)
		}
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	output := args[len(args)-1]

	switch os.Getenv("EXTRACTOR_HELPER_MODE") {
	case "success":
		if err := archive.WriteFile(output, testsupport.RandomMotion(5, 12)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "empty":
		if err := os.WriteFile(output, []byte(`{"frames":[]}`), 0o644); err != nil {
			os.Exit(1)
		}
	case "nopose":
		fmt.Fprintln(os.Stderr, "no landmarks in any frame")
		os.Exit(exitNoPose)
	case "fail":
		fmt.Fprintln(os.Stdout, "loading model")
		fmt.Fprintln(os.Stderr, "error: model weights missing")
		os.Exit(1)
	case "hang":
		time.Sleep(10 * time.Second)
	case "noop":
	}
	os.Exit(0)
}
