package resample

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"swingmatch/internal/motion"
)

// DefaultFrames is the fixed frame count used for comparison.
const DefaultFrames = 316

// Resample returns m interpolated to exactly n frames.
func Resample(m motion.Motion, n int) (motion.Trajectory, error) {
	if n < 1 {
		return motion.Trajectory{}, fmt.Errorf("resample: frame count %d must be positive", n)
	}
	joints, err := m.Validate()
	if err != nil {
		return motion.Trajectory{}, err
	}

	frames := len(m)
	channels := joints * motion.Dimensions
	flat := m.Flatten()
	out := mat.NewDense(n, channels, nil)

	if frames == 1 {
		for i := 0; i < n; i++ {
			out.SetRow(i, flat)
		}
		return motion.NewTrajectory(out, joints)
	}

	src := timeAxis(frames)
	dst := timeAxis(n)
	for c := 0; c < channels; c++ {
		column := make([]float64, frames)
		for t := range column {
			column[t] = flat[t*channels+c]
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(src, column); err != nil {
			return motion.Trajectory{}, fmt.Errorf("resample: channel %d: %w", c, err)
		}
		for i, x := range dst {
			out.Set(i, c, pl.Predict(x))
		}
	}
	return motion.NewTrajectory(out, joints)
}

// Trajectory resamples an already normalized trajectory to n frames.
func Trajectory(t motion.Trajectory, n int) (motion.Trajectory, error) {
	return Resample(t.Motion(), n)
}

// timeAxis returns n evenly spaced points on [0, 1].
func timeAxis(n int) []float64 {
	if n == 1 {
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, 1)
}
