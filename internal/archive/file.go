package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"swingmatch/internal/motion"
)

// ErrUnknownFormat indicates a file extension with no codec.
var ErrUnknownFormat = errors.New("unknown motion file format")

// Extensions lists the recognised motion file suffixes.
var Extensions = []string{".npz", ".json"}

// ReadFile loads a motion, choosing the codec from the file extension.
func ReadFile(path string) (motion.Motion, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".npz":
		return ReadNPZFile(path)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadJSON(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// WriteFile stores a motion, choosing the codec from the file extension. The
// file is written to a temporary sibling and renamed into place.
func WriteFile(path string, m motion.Motion) error {
	var encode func(io.Writer, motion.Motion) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".npz":
		encode = WriteNPZ
	case ".json":
		encode = WriteJSON
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	tmpPath := tmp.Name()
	if err := encode(tmp, m); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename archive: %w", err)
	}
	return nil
}

// IsMotionFile reports whether path has a recognised motion extension.
func IsMotionFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range Extensions {
		if ext == known {
			return true
		}
	}
	return false
}
