// Package alignment scores two normalized trajectories with Dynamic Time
// Warping.
//
// The local cost between frames is the Euclidean distance of their flattened
// joint vectors. The cumulative cost follows the standard recurrence
//
//	D(0,0) = 0, D(i,0) = D(0,j) = +Inf
//	D(i,j) = cost(i,j) + min(D(i-1,j), D(i,j-1), D(i-1,j-1))
//
// and the distance is D(|A|,|B|). Corresponding poses may sit at different
// frame offsets, so a slower or faster execution of the same swing is not
// penalized the way a frame-by-frame distance would be.
//
// Similarity maps a distance onto [0, 100] against a fixed bound equal to the
// trajectory's element count (frames * joints * 3). The bound is shape
// derived, not a measured worst case: large true distances floor at 0.
//
// Memory:
//   - FullMatrix keeps the whole (n+1)x(m+1) table and can backtrack the path.
//   - TwoRows keeps two rows, O(m) memory, distance only.
package alignment
