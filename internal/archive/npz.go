package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"swingmatch/internal/motion"
)

// KeypointsEntry is the array name motions are stored under.
const KeypointsEntry = "keypoints"

// ErrMissingEntry indicates the archive has no keypoints array.
var ErrMissingEntry = errors.New("archive has no keypoints entry")

// WriteNPZ stores m as the keypoints entry of an uncompressed .npz archive.
func WriteNPZ(w io.Writer, m motion.Motion) error {
	joints, err := m.Validate()
	if err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	entry, err := zw.CreateHeader(&zip.FileHeader{Name: KeypointsEntry + ".npy", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("create npz entry: %w", err)
	}
	a := array{shape: []int{len(m), joints, motion.Dimensions}, data: m.Flatten()}
	if err := writeNPY(entry, a); err != nil {
		return fmt.Errorf("write npz entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize npz: %w", err)
	}
	return nil
}

// ReadNPZ decodes the keypoints entry of an .npz archive. Both [T, J, 3] and
// pre-flattened [T, J*3] arrays are accepted.
func ReadNPZ(r io.ReaderAt, size int64) (motion.Motion, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open npz: %w", err)
	}
	for _, f := range zr.File {
		if f.Name != KeypointsEntry+".npy" && f.Name != KeypointsEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open npz entry: %w", err)
		}
		a, err := readNPY(rc, f.UncompressedSize64)
		rc.Close()
		if err != nil {
			return nil, err
		}
		return toMotion(a)
	}
	return nil, ErrMissingEntry
}

// ReadNPZFile reads a motion from an .npz file on disk.
func ReadNPZFile(path string) (motion.Motion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadNPZ(bytes.NewReader(data), int64(len(data)))
}

func toMotion(a array) (motion.Motion, error) {
	var frames, joints int
	switch len(a.shape) {
	case 3:
		if a.shape[2] != motion.Dimensions {
			return nil, fmt.Errorf("%w: last dimension %d, want %d", ErrUnsupportedArray, a.shape[2], motion.Dimensions)
		}
		frames, joints = a.shape[0], a.shape[1]
	case 2:
		if a.shape[1]%motion.Dimensions != 0 {
			return nil, fmt.Errorf("%w: %d columns is not a multiple of %d", ErrUnsupportedArray, a.shape[1], motion.Dimensions)
		}
		frames, joints = a.shape[0], a.shape[1]/motion.Dimensions
	default:
		return nil, fmt.Errorf("%w: rank %d", ErrUnsupportedArray, len(a.shape))
	}
	if frames == 0 {
		return nil, motion.ErrEmptyMotion
	}
	return motion.FromFlat(a.data, frames, joints)
}
