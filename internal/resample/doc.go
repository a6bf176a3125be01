// Package resample normalizes motions of any length to a fixed frame count.
//
// Every flattened channel (joint axis) is treated independently: the T
// original samples are control points on a normalized time axis
// linspace(0, 1, T), and a piecewise-linear interpolant is evaluated at
// linspace(0, 1, N). Values beyond the original range clamp to the end
// samples; nothing is smoothed or re-detected. A single-frame motion is
// replicated across all N outputs.
package resample
