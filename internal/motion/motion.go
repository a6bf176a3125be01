package motion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed or absent motion input. It is fatal to a
	// comparison and is never retried.
	ErrInvalidInput = errors.New("invalid motion input")

	// ErrEmptyMotion indicates a motion with zero frames.
	ErrEmptyMotion = fmt.Errorf("%w: motion has no frames", ErrInvalidInput)

	// ErrRaggedFrame indicates frames within one motion disagree on joint count.
	ErrRaggedFrame = fmt.Errorf("%w: frames have differing joint counts", ErrInvalidInput)

	// ErrShapeMismatch indicates two motions track different joint sets.
	ErrShapeMismatch = fmt.Errorf("%w: motions have mismatched joint shapes", ErrInvalidInput)
)

// Point is one joint position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Coord returns the value on the requested axis.
func (p Point) Coord(axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// Frame holds one position per joint, in landmark order.
type Frame []Point

// Motion is a time-ordered sequence of frames.
type Motion []Frame

// Validate checks the motion is non-empty and rectangular and returns the
// joint count shared by every frame.
func (m Motion) Validate() (int, error) {
	if len(m) == 0 {
		return 0, ErrEmptyMotion
	}
	joints := len(m[0])
	if joints == 0 {
		return 0, fmt.Errorf("%w: frame 0 has no joints", ErrInvalidInput)
	}
	for i, frame := range m {
		if len(frame) != joints {
			return 0, fmt.Errorf("%w: frame %d has %d joints, want %d", ErrRaggedFrame, i, len(frame), joints)
		}
	}
	return joints, nil
}

// Shape returns the frame and joint counts. The joint count is taken from the
// first frame and is zero for an empty motion.
func (m Motion) Shape() (frames, joints int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// Flatten returns the motion as row-major [T, J*3] scalars. The motion must be
// rectangular; call Validate first.
func (m Motion) Flatten() []float64 {
	frames, joints := m.Shape()
	out := make([]float64, 0, frames*joints*Dimensions)
	for _, frame := range m {
		for _, p := range frame {
			out = append(out, p.X, p.Y, p.Z)
		}
	}
	return out
}

// FromFlat rebuilds a motion from row-major [frames, joints, 3] scalars.
func FromFlat(data []float64, frames, joints int) (Motion, error) {
	if frames <= 0 {
		return nil, ErrEmptyMotion
	}
	if joints <= 0 {
		return nil, fmt.Errorf("%w: joint count %d", ErrInvalidInput, joints)
	}
	if want := frames * joints * Dimensions; len(data) != want {
		return nil, fmt.Errorf("%w: %d values for shape [%d,%d,%d]", ErrInvalidInput, len(data), frames, joints, Dimensions)
	}
	m := make(Motion, frames)
	idx := 0
	for t := range m {
		frame := make(Frame, joints)
		for j := range frame {
			frame[j] = Point{X: data[idx], Y: data[idx+1], Z: data[idx+2]}
			idx += Dimensions
		}
		m[t] = frame
	}
	return m, nil
}

// CheckPair validates both motions and confirms they share a joint layout.
func CheckPair(reference, user Motion) (int, error) {
	refJoints, err := reference.Validate()
	if err != nil {
		return 0, fmt.Errorf("reference: %w", err)
	}
	userJoints, err := user.Validate()
	if err != nil {
		return 0, fmt.Errorf("user: %w", err)
	}
	if refJoints != userJoints {
		return 0, fmt.Errorf("%w: reference has %d joints, user has %d", ErrShapeMismatch, refJoints, userJoints)
	}
	return refJoints, nil
}
