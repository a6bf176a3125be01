// Package compare is the motion comparison engine entry point.
//
// Compare normalizes a reference and a user motion to a fixed frame count,
// scores their DTW alignment as a bounded percentage, and runs the deviation
// checks to produce between three and five corrective cues. Every tunable
// (frame count, thresholds, DTW band, parallelism) is carried in Options so a
// comparison is a pure function of its arguments.
//
// Rank runs the same comparison of one user motion against many references.
package compare
