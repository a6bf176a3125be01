package resample_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingmatch/internal/motion"
	"swingmatch/internal/resample"
	"swingmatch/internal/testsupport"
)

const tol = 1e-9

// TestResample_FrameCount verifies the output always has exactly N frames,
// whether the input is shorter, equal, or longer.
func TestResample_FrameCount(t *testing.T) {
	for _, frames := range []int{1, 2, 10, 316, 500} {
		tr, err := resample.Resample(testsupport.RandomMotion(int64(frames), frames), resample.DefaultFrames)
		require.NoError(t, err, "frames=%d", frames)
		assert.Equal(t, resample.DefaultFrames, tr.Frames(), "frames=%d", frames)
		assert.Equal(t, motion.JointCount*motion.Dimensions, tr.Channels())
	}
}

// TestResample_Constant checks that a constant motion stays constant.
func TestResample_Constant(t *testing.T) {
	p := motion.Point{X: 0.25, Y: -0.5, Z: 1.75}
	tr, err := resample.Resample(testsupport.ConstantMotion(50, motion.JointCount, p), 316)
	require.NoError(t, err)

	for i := 0; i < tr.Frames(); i++ {
		got, err := tr.PointAt(i, motion.LeftWrist)
		require.NoError(t, err)
		assert.InDelta(t, p.X, got.X, tol)
		assert.InDelta(t, p.Y, got.Y, tol)
		assert.InDelta(t, p.Z, got.Z, tol)
	}
}

// TestResample_SingleFrame replicates a one-frame motion across every output.
func TestResample_SingleFrame(t *testing.T) {
	m := testsupport.RandomMotion(7, 1)
	tr, err := resample.Resample(m, 316)
	require.NoError(t, err)
	require.Equal(t, 316, tr.Frames())

	want := m.Flatten()
	for i := 0; i < tr.Frames(); i++ {
		assert.Equal(t, want, tr.Frame(i))
	}
}

// TestResample_Idempotent resamples twice to the same N.
func TestResample_Idempotent(t *testing.T) {
	first, err := resample.Resample(testsupport.RandomMotion(3, 123), 64)
	require.NoError(t, err)
	second, err := resample.Trajectory(first, 64)
	require.NoError(t, err)

	for i := 0; i < first.Frames(); i++ {
		assert.InDeltaSlice(t, first.Frame(i), second.Frame(i), tol)
	}
}

// TestResample_LinearRamp checks interpolated values on a straight line and
// that the endpoints are preserved.
func TestResample_LinearRamp(t *testing.T) {
	m := testsupport.RampMotion(10, motion.LeftWrist, motion.Point{}, motion.Point{X: 1, Y: 1, Z: 1})
	tr, err := resample.Resample(m, 19)
	require.NoError(t, err)

	ys, err := tr.Series(motion.LeftWrist, motion.AxisY)
	require.NoError(t, err)
	for i, y := range ys {
		assert.InDelta(t, float64(i)/18, y, tol, "frame %d", i)
	}
	assert.InDelta(t, 0, ys[0], tol)
	assert.InDelta(t, 1, ys[len(ys)-1], tol)
}

// TestResample_Downsample keeps the endpoints when T > N.
func TestResample_Downsample(t *testing.T) {
	m := testsupport.RampMotion(400, motion.Nose, motion.Point{Y: 2}, motion.Point{Y: 4})
	tr, err := resample.Resample(m, 5)
	require.NoError(t, err)

	ys, err := tr.Series(motion.Nose, motion.AxisY)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 2.5, 3, 3.5, 4}, ys, 1e-6)
}

func TestResample_Errors(t *testing.T) {
	_, err := resample.Resample(motion.Motion{}, 316)
	assert.ErrorIs(t, err, motion.ErrEmptyMotion)

	_, err = resample.Resample(testsupport.RandomMotion(1, 4), 0)
	assert.Error(t, err)
}
