package deviation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"swingmatch/internal/motion"
)

var errNoSamples = errors.New("no samples to compare")

// AxisDeviation measures the mean absolute difference of one joint coordinate.
func AxisDeviation(joint motion.Joint, axis motion.Axis) Measure {
	return func(reference, user motion.Trajectory) (float64, error) {
		a, err := reference.Series(joint, axis)
		if err != nil {
			return 0, fmt.Errorf("reference: %w", err)
		}
		b, err := user.Series(joint, axis)
		if err != nil {
			return 0, fmt.Errorf("user: %w", err)
		}
		return meanAbsDiff(a, b)
	}
}

// SegmentAngleDeviation measures the mean absolute difference of the in-plane
// angle atan2(dy, dx) of the segment from one joint to another.
func SegmentAngleDeviation(from, to motion.Joint) Measure {
	return func(reference, user motion.Trajectory) (float64, error) {
		a, err := segmentAngles(reference, from, to)
		if err != nil {
			return 0, fmt.Errorf("reference: %w", err)
		}
		b, err := segmentAngles(user, from, to)
		if err != nil {
			return 0, fmt.Errorf("user: %w", err)
		}
		return meanAbsDiff(a, b)
	}
}

// FinalPositionDeviation measures the Euclidean distance between the joint's
// positions in the last frame of each trajectory.
func FinalPositionDeviation(joint motion.Joint) Measure {
	return func(reference, user motion.Trajectory) (float64, error) {
		a, err := reference.PointAt(reference.Frames()-1, joint)
		if err != nil {
			return 0, fmt.Errorf("reference: %w", err)
		}
		b, err := user.PointAt(user.Frames()-1, joint)
		if err != nil {
			return 0, fmt.Errorf("user: %w", err)
		}
		return floats.Distance([]float64{a.X, a.Y, a.Z}, []float64{b.X, b.Y, b.Z}, 2), nil
	}
}

// VelocityDeviation measures the mean absolute difference of the frame-to-frame
// first difference of one joint coordinate.
func VelocityDeviation(joint motion.Joint, axis motion.Axis) Measure {
	return func(reference, user motion.Trajectory) (float64, error) {
		a, err := reference.Series(joint, axis)
		if err != nil {
			return 0, fmt.Errorf("reference: %w", err)
		}
		b, err := user.Series(joint, axis)
		if err != nil {
			return 0, fmt.Errorf("user: %w", err)
		}
		return meanAbsDiff(firstDifference(a), firstDifference(b))
	}
}

func segmentAngles(t motion.Trajectory, from, to motion.Joint) ([]float64, error) {
	fx, err := t.Series(from, motion.AxisX)
	if err != nil {
		return nil, err
	}
	fy, err := t.Series(from, motion.AxisY)
	if err != nil {
		return nil, err
	}
	tx, err := t.Series(to, motion.AxisX)
	if err != nil {
		return nil, err
	}
	ty, err := t.Series(to, motion.AxisY)
	if err != nil {
		return nil, err
	}
	angles := make([]float64, len(fx))
	for i := range angles {
		angles[i] = math.Atan2(ty[i]-fy[i], tx[i]-fx[i])
	}
	return angles, nil
}

func meanAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("series length %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, errNoSamples
	}
	diff := make([]float64, len(a))
	floats.SubTo(diff, a, b)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}
	return stat.Mean(diff, nil), nil
}

func firstDifference(s []float64) []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, len(s)-1)
	floats.SubTo(out, s[1:], s[:len(s)-1])
	return out
}
