package deviation

import (
	"errors"
	"fmt"
	"math"

	"swingmatch/internal/motion"
)

// ErrFeatureComputation marks a check whose measure could not be computed.
var ErrFeatureComputation = errors.New("feature computation failed")

// Measure reduces a pair of trajectories to a single non-negative deviation.
type Measure func(reference, user motion.Trajectory) (float64, error)

// Check is one feature rule. It triggers when the measured deviation is
// strictly greater than Threshold.
type Check struct {
	Name           string
	Threshold      float64
	Message        string
	FailureMessage string
	Measure        Measure
}

// Outcome is the result of evaluating one Check.
type Outcome struct {
	Check     string
	Value     float64
	Threshold float64
	Triggered bool
	// Message is the feedback contributed by this check, empty when none.
	Message string
	Err     error
}

// Failed reports whether the measure could not be computed.
func (o Outcome) Failed() bool { return o.Err != nil }

// Evaluate runs the check against both trajectories. Errors and panics from
// the measure are converted into a failed Outcome carrying the check's
// FailureMessage; Evaluate itself never panics.
func (c Check) Evaluate(reference, user motion.Trajectory) (out Outcome) {
	out = Outcome{Check: c.Name, Threshold: c.Threshold}
	defer func() {
		if r := recover(); r != nil {
			out.Value = 0
			out.Triggered = false
			out.Err = fmt.Errorf("%w: %s: panic: %v", ErrFeatureComputation, c.Name, r)
			out.Message = c.FailureMessage
		}
	}()

	if c.Measure == nil {
		return c.fail(errors.New("no measure"))
	}
	value, err := c.Measure(reference, user)
	if err != nil {
		return c.fail(err)
	}
	if math.IsNaN(value) {
		return c.fail(errors.New("measure is NaN"))
	}
	out.Value = value
	if value > c.Threshold {
		out.Triggered = true
		out.Message = c.Message
	}
	return out
}

func (c Check) fail(err error) Outcome {
	return Outcome{
		Check:     c.Name,
		Threshold: c.Threshold,
		Message:   c.FailureMessage,
		Err:       fmt.Errorf("%w: %s: %w", ErrFeatureComputation, c.Name, err),
	}
}
