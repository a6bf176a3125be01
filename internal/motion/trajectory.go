package motion

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Trajectory is a motion flattened to one row per frame, with J*3 columns.
// Rows are frames; column j*3+a is axis a of joint j.
type Trajectory struct {
	data   *mat.Dense
	joints int
}

// NewTrajectory wraps a [frames, joints*3] matrix. The matrix is owned by the
// trajectory afterwards and must not be modified by the caller.
func NewTrajectory(data *mat.Dense, joints int) (Trajectory, error) {
	if data == nil {
		return Trajectory{}, ErrEmptyMotion
	}
	rows, cols := data.Dims()
	if rows == 0 {
		return Trajectory{}, ErrEmptyMotion
	}
	if joints <= 0 || cols != joints*Dimensions {
		return Trajectory{}, fmt.Errorf("%w: %d columns for %d joints", ErrInvalidInput, cols, joints)
	}
	return Trajectory{data: data, joints: joints}, nil
}

// Frames returns the number of rows.
func (t Trajectory) Frames() int {
	if t.data == nil {
		return 0
	}
	r, _ := t.data.Dims()
	return r
}

// Joints returns the number of joints per frame.
func (t Trajectory) Joints() int { return t.joints }

// Channels returns the number of scalar columns (joints * 3).
func (t Trajectory) Channels() int { return t.joints * Dimensions }

// Len returns the total element count, frames * channels.
func (t Trajectory) Len() int { return t.Frames() * t.Channels() }

// Frame returns a read-only view of row i.
func (t Trajectory) Frame(i int) []float64 {
	return t.data.RawRowView(i)
}

// Rows returns read-only views of every frame.
func (t Trajectory) Rows() [][]float64 {
	n := t.Frames()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = t.data.RawRowView(i)
	}
	return rows
}

// Channel returns a copy of column c across all frames.
func (t Trajectory) Channel(c int) []float64 {
	return mat.Col(nil, c, t.data)
}

// Series returns one joint axis across all frames.
func (t Trajectory) Series(joint Joint, axis Axis) ([]float64, error) {
	if joint < 0 || int(joint) >= t.joints {
		return nil, fmt.Errorf("joint %s out of range for %d joints", joint, t.joints)
	}
	if axis < AxisX || axis > AxisZ {
		return nil, fmt.Errorf("axis %s out of range", axis)
	}
	return t.Channel(joint.Channel(axis)), nil
}

// PointAt returns the position of joint in frame i.
func (t Trajectory) PointAt(i int, joint Joint) (Point, error) {
	if i < 0 || i >= t.Frames() {
		return Point{}, fmt.Errorf("frame %d out of range for %d frames", i, t.Frames())
	}
	if joint < 0 || int(joint) >= t.joints {
		return Point{}, fmt.Errorf("joint %s out of range for %d joints", joint, t.joints)
	}
	row := t.data.RawRowView(i)
	base := int(joint) * Dimensions
	return Point{X: row[base], Y: row[base+1], Z: row[base+2]}, nil
}

// Motion converts the trajectory back to frame form.
func (t Trajectory) Motion() Motion {
	frames := t.Frames()
	m := make(Motion, frames)
	for i := range m {
		row := t.data.RawRowView(i)
		frame := make(Frame, t.joints)
		for j := range frame {
			base := j * Dimensions
			frame[j] = Point{X: row[base], Y: row[base+1], Z: row[base+2]}
		}
		m[i] = frame
	}
	return m
}
