package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"swingmatch/internal/archive"
	"swingmatch/internal/config"
	"swingmatch/internal/extractor"
	"swingmatch/internal/library"
	"swingmatch/internal/motion"
	"swingmatch/internal/services"
)

// motionSource is a loaded motion plus the label recorded in history.
type motionSource struct {
	Label  string
	Path   string
	Motion motion.Motion
}

// resolveReference loads a reference given either an archive path or a shot
// name from the library.
func (c *commandContext) resolveReference(cmd *cobra.Command, arg string) (motionSource, error) {
	if archive.IsMotionFile(arg) {
		return loadArchive(arg)
	}
	lib, err := c.openLibrary(cmd)
	if err != nil {
		return motionSource{}, err
	}
	m, err := lib.Load(arg)
	if err != nil {
		return motionSource{}, err
	}
	shot, _ := library.NormalizeShot(arg)
	return motionSource{Label: shot, Motion: m}, nil
}

// resolveUser loads the user motion from an archive, or extracts it from a
// video into the keypoint directory first.
func (c *commandContext) resolveUser(cmd *cobra.Command, arg, shot string) (motionSource, error) {
	if archive.IsMotionFile(arg) {
		return loadArchive(arg)
	}
	video, err := config.ExpandPath(arg)
	if err != nil {
		return motionSource{}, err
	}
	output := filepath.Join(c.configValue().Paths.KeypointDir, extractor.ArchiveName(shot, video))
	m, err := c.extractorClient(cmd).Extract(cmd.Context(), video, output)
	if err != nil {
		return motionSource{}, err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Extracted %d frames to %s\n", len(m), output)
	return motionSource{Label: output, Path: output, Motion: m}, nil
}

func loadArchive(arg string) (motionSource, error) {
	path, err := config.ExpandPath(arg)
	if err != nil {
		return motionSource{}, err
	}
	m, err := archive.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return motionSource{}, services.Wrap(services.ErrNotFound, "cli", "load motion", fmt.Sprintf("%q", arg), err)
		}
		return motionSource{}, fmt.Errorf("load motion %s: %w", arg, err)
	}
	return motionSource{Label: path, Path: path, Motion: m}, nil
}
