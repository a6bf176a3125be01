package alignment

import (
	"fmt"
	"math"

	"swingmatch/internal/motion"
)

// Score is the outcome of aligning two trajectories.
type Score struct {
	Distance    float64
	MaxDistance float64
	Similarity  float64
	Path        Path
}

// Similarity converts a DTW distance into a percentage in [0, 100], rounded to
// two decimals, using elements (frames * channels) as the maximum distance.
func Similarity(distance float64, elements int) float64 {
	if elements <= 0 || math.IsNaN(distance) {
		return 0
	}
	s := 100 * (1 - distance/float64(elements))
	s = math.Min(100, math.Max(0, s))
	return round2(s)
}

// Align computes the DTW distance between two trajectories and its similarity.
// The bound is taken from the reference trajectory's shape.
func Align(reference, user motion.Trajectory, opts *Options) (Score, error) {
	if reference.Channels() != user.Channels() {
		return Score{}, fmt.Errorf("%w: %d vs %d channels", motion.ErrShapeMismatch, reference.Channels(), user.Channels())
	}
	distance, path, err := Distance(reference.Rows(), user.Rows(), opts)
	if err != nil {
		return Score{}, err
	}
	elements := reference.Len()
	return Score{
		Distance:    distance,
		MaxDistance: float64(elements),
		Similarity:  Similarity(distance, elements),
		Path:        path,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
