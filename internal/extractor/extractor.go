package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"swingmatch/internal/archive"
	"swingmatch/internal/logging"
	"swingmatch/internal/motion"
	"swingmatch/internal/services"
	"swingmatch/internal/textutil"
)

var commandContext = exec.CommandContext

// ErrNoPoseDetected indicates the extractor found no frames with a pose.
var ErrNoPoseDetected = fmt.Errorf("no pose detected: %w", motion.ErrEmptyMotion)

const (
	component        = "extractor"
	exitNoPose       = 3
	outputTailLimit  = 2048
	defaultExtension = ".npz"
)

// Client extracts pose keypoints from a video.
type Client interface {
	Extract(ctx context.Context, videoPath, outputPath string) (motion.Motion, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithArgs sets arguments placed before the video and output paths.
func WithArgs(args ...string) Option {
	return func(c *CLI) {
		c.args = append([]string(nil), args...)
	}
}

// WithTimeout bounds each extraction. Zero disables the deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		c.logger = logger
	}
}

// CLI wraps the configured extractor command.
type CLI struct {
	command string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
}

// NewCLI constructs a CLI client for command.
func NewCLI(command string, opts ...Option) *CLI {
	cli := &CLI{command: strings.TrimSpace(command)}
	for _, opt := range opts {
		opt(cli)
	}
	cli.logger = logging.NewComponentLogger(cli.logger, component)
	return cli
}

// Command returns the executable the client launches.
func (c *CLI) Command() string {
	return c.command
}

// Extract runs the extractor on videoPath, writing the archive to outputPath,
// and returns the decoded motion.
func (c *CLI) Extract(ctx context.Context, videoPath, outputPath string) (motion.Motion, error) {
	if c.command == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "extract", "extractor command not configured", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return nil, services.Wrap(services.ErrValidation, component, "extract", "output path required", nil)
	}
	if info, err := os.Stat(videoPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, component, "extract", fmt.Sprintf("video %q", videoPath), err)
		}
		return nil, services.Wrap(services.ErrValidation, component, "extract", "stat video", err)
	} else if info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, component, "extract", fmt.Sprintf("%q is a directory", videoPath), nil)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "extract", "create keypoint directory", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(append([]string(nil), c.args...), videoPath, outputPath)
	cmd := commandContext(ctx, c.command, args...) //nolint:gosec
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	started := time.Now()
	c.logger.Info("pose extraction started",
		logging.String(logging.FieldEventType, "extract_start"),
		logging.String("video", videoPath),
		logging.String("command", c.command),
	)
	runErr := cmd.Run()
	elapsed := time.Since(started)

	if runErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, services.Wrap(services.ErrTimeout, component, "extract", fmt.Sprintf("exceeded %s", c.timeout), runErr)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && exitErr.ExitCode() == exitNoPose {
			return nil, fmt.Errorf("%w: %s", ErrNoPoseDetected, videoPath)
		}
		detail := "extractor failed"
		if tail := outputTail(output.Bytes()); tail != "" {
			detail = fmt.Sprintf("extractor failed: %s", tail)
		}
		return nil, services.Wrap(services.ErrExternalTool, component, "extract", detail, runErr)
	}

	m, err := archive.ReadFile(outputPath)
	switch {
	case errors.Is(err, motion.ErrEmptyMotion):
		return nil, fmt.Errorf("%w: %s", ErrNoPoseDetected, videoPath)
	case errors.Is(err, os.ErrNotExist):
		return nil, services.Wrap(services.ErrExternalTool, component, "extract", fmt.Sprintf("extractor wrote no archive at %q", outputPath), err)
	case err != nil:
		return nil, services.Wrap(services.ErrExternalTool, component, "extract", "decode extractor archive", err)
	}

	c.logger.Info("pose extraction completed",
		logging.String(logging.FieldEventType, "extract_complete"),
		logging.String("video", videoPath),
		logging.String("archive", outputPath),
		logging.Int("frames", len(m)),
		logging.Duration("elapsed", elapsed),
	)
	return m, nil
}

// ArchiveName returns the keypoint archive file name for a video, formed as
// <shot>_<video stem>.npz. An empty shot falls back to the name of the
// directory holding the video.
func ArchiveName(shot, videoPath string) string {
	if strings.TrimSpace(shot) == "" {
		shot = filepath.Base(filepath.Dir(videoPath))
	}
	base := filepath.Base(videoPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return textutil.SanitizeToken(shot) + "_" + textutil.SanitizeToken(stem) + defaultExtension
}

func outputTail(out []byte) string {
	text := strings.TrimSpace(string(out))
	if len(text) > outputTailLimit {
		text = text[len(text)-outputTailLimit:]
	}
	lines := strings.Split(text, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ Client = (*CLI)(nil)
