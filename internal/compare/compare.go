package compare

import (
	"slices"

	"golang.org/x/sync/errgroup"

	"swingmatch/internal/alignment"
	"swingmatch/internal/deviation"
	"swingmatch/internal/logging"
	"swingmatch/internal/motion"
	"swingmatch/internal/resample"
)

// Result is the outcome handed to callers: a similarity percentage in [0, 100]
// rounded to two decimals and three to five feedback cues in check order.
type Result struct {
	Similarity float64  `json:"similarity"`
	Feedback   []string `json:"feedback"`
}

// Report is a Result plus the intermediate values that produced it.
type Report struct {
	Result
	Distance        float64             `json:"distance"`
	MaxDistance     float64             `json:"max_distance"`
	Frames          int                 `json:"frames"`
	ReferenceFrames int                 `json:"reference_frames"`
	UserFrames      int                 `json:"user_frames"`
	Outcomes        []deviation.Outcome `json:"-"`
}

// Compare scores user against reference. Only malformed input is an error;
// individual feature failures surface as feedback.
func Compare(reference, user motion.Motion, opts Options) (Result, error) {
	report, err := Analyze(reference, user, opts)
	if err != nil {
		return Result{}, err
	}
	return report.Result, nil
}

// Analyze is Compare with the intermediate values retained.
func Analyze(reference, user motion.Motion, opts Options) (Report, error) {
	if err := opts.validate(); err != nil {
		return Report{}, err
	}
	if _, err := motion.CheckPair(reference, user); err != nil {
		return Report{}, err
	}

	ref, usr, err := normalizePair(reference, user, opts)
	if err != nil {
		return Report{}, err
	}
	report, err := compareTrajectories(ref, usr, opts)
	if err != nil {
		return Report{}, err
	}
	report.ReferenceFrames = len(reference)
	report.UserFrames = len(user)
	return report, nil
}

func normalizePair(reference, user motion.Motion, opts Options) (motion.Trajectory, motion.Trajectory, error) {
	n := opts.frames()
	if !opts.Parallel {
		ref, err := resample.Resample(reference, n)
		if err != nil {
			return motion.Trajectory{}, motion.Trajectory{}, err
		}
		usr, err := resample.Resample(user, n)
		if err != nil {
			return motion.Trajectory{}, motion.Trajectory{}, err
		}
		return ref, usr, nil
	}

	var ref, usr motion.Trajectory
	var g errgroup.Group
	g.Go(func() error {
		var err error
		ref, err = resample.Resample(reference, n)
		return err
	})
	g.Go(func() error {
		var err error
		usr, err = resample.Resample(user, n)
		return err
	})
	if err := g.Wait(); err != nil {
		return motion.Trajectory{}, motion.Trajectory{}, err
	}
	return ref, usr, nil
}

func compareTrajectories(ref, usr motion.Trajectory, opts Options) (Report, error) {
	logger := logging.NewComponentLogger(opts.Logger, "compare")

	score, err := alignment.Align(ref, usr, ptr(opts.alignment()))
	if err != nil {
		return Report{}, err
	}

	analysis := deviation.Analyze(ref, usr, deviation.Checks(opts.thresholds()), opts.Parallel)
	if err := analysis.Err(); err != nil {
		logging.WarnWithContext(logger, "feature checks could not be computed", "feature_check_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify both motions track the full joint set"),
			logging.String(logging.FieldImpact, "affected checks report an analysis notice instead of a cue"),
		)
	}

	logger.Debug("comparison scored",
		logging.Float64("distance", score.Distance),
		logging.Similarity(score.Similarity),
		logging.Int("feedback", len(analysis.Feedback)),
	)

	return Report{
		Result: Result{
			Similarity: score.Similarity,
			Feedback:   slices.Clone(analysis.Feedback),
		},
		Distance:    score.Distance,
		MaxDistance: score.MaxDistance,
		Frames:      ref.Frames(),
		Outcomes:    analysis.Outcomes,
	}, nil
}

func ptr[T any](v T) *T { return &v }
