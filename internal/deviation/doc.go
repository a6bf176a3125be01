// Package deviation translates kinematic differences between a reference and a
// user trajectory into corrective feedback.
//
// Each feature is a declarative Check: a measure that reduces both trajectories
// to one scalar deviation, a threshold, and two fixed strings (the cue emitted
// when the threshold is exceeded and the notice emitted when the measure cannot
// be computed). Checks are evaluated independently; a failing or panicking
// measure produces a failed Outcome for that check only.
//
// Feedback keeps check order, is padded with a generic cue up to MinFeedback
// entries, and is truncated to MaxFeedback.
package deviation
