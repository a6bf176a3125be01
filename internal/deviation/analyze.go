package deviation

import (
	"sync"

	"go.uber.org/multierr"

	"swingmatch/internal/motion"
)

const (
	// MinFeedback is the number of cues always returned.
	MinFeedback = 3
	// MaxFeedback caps the number of cues returned.
	MaxFeedback = 5
	// FillerMessage pads feedback when fewer than MinFeedback checks fire.
	FillerMessage = "Refine your shot to better match reference posture and movement."
)

// Report is the analysis of one trajectory pair.
type Report struct {
	Outcomes []Outcome
	Feedback []string
}

// Err aggregates the errors of every failed check, or nil.
func (r Report) Err() error {
	var err error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			err = multierr.Append(err, o.Err)
		}
	}
	return err
}

// Analyze evaluates checks in order. With parallel set, checks run
// concurrently and outcomes are stored by index, so the report is identical
// to a sequential run.
func Analyze(reference, user motion.Trajectory, checks []Check, parallel bool) Report {
	outcomes := make([]Outcome, len(checks))
	if parallel {
		var wg sync.WaitGroup
		for i, check := range checks {
			wg.Go(func() {
				outcomes[i] = check.Evaluate(reference, user)
			})
		}
		wg.Wait()
	} else {
		for i, check := range checks {
			outcomes[i] = check.Evaluate(reference, user)
		}
	}
	return Report{Outcomes: outcomes, Feedback: Feedback(outcomes)}
}

// Feedback collects outcome messages in order, pads to MinFeedback with
// FillerMessage and truncates to MaxFeedback.
func Feedback(outcomes []Outcome) []string {
	messages := make([]string, 0, MaxFeedback)
	for _, o := range outcomes {
		if o.Message != "" {
			messages = append(messages, o.Message)
		}
	}
	for len(messages) < MinFeedback {
		messages = append(messages, FillerMessage)
	}
	if len(messages) > MaxFeedback {
		messages = messages[:MaxFeedback]
	}
	return messages
}
