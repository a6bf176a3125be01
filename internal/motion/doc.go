// Package motion defines the keypoint data carried through the comparison
// engine.
//
// A Motion is the raw pose-extractor output: an ordered list of frames, each
// holding one 3D point per tracked joint (33 MediaPipe landmarks in practice).
// A Trajectory is a Motion flattened to one row per frame and resampled to a
// fixed frame count; it is backed by a gonum dense matrix and is never
// mutated after construction.
//
// Input validation lives here so every stage reports malformed input with the
// same sentinel: wrap checks with errors.Is(err, ErrInvalidInput).
package motion
