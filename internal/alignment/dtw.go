package alignment

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyInput indicates one or both sequences have no frames.
	ErrEmptyInput = errors.New("alignment: input sequences must be non-empty")

	// ErrDimensionMismatch indicates frames of differing vector length.
	ErrDimensionMismatch = errors.New("alignment: frame vectors differ in length")

	// ErrPathNeedsMatrix indicates ReturnPath was requested without FullMatrix.
	ErrPathNeedsMatrix = errors.New("alignment: ReturnPath requires MemoryMode=FullMatrix")

	// ErrBadOption indicates an invalid option value.
	ErrBadOption = errors.New("alignment: invalid option")
)

// Distance computes the DTW distance between two sequences of frame vectors
// using Euclidean local cost. A nil opts means DefaultOptions.
func Distance(a, b [][]float64, opts *Options) (float64, Path, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := validate(a, b, o); err != nil {
		return 0, nil, err
	}

	n, m := len(a), len(b)
	window := o.Window
	if window == 0 {
		window = math.MaxInt
	}

	if o.MemoryMode == TwoRows {
		return twoRows(a, b, window), nil, nil
	}

	dp := fullMatrix(a, b, window)
	distance := dp[n][m]
	if !o.ReturnPath || math.IsInf(distance, 1) {
		return distance, nil, nil
	}
	return distance, backtrack(dp), nil
}

func validate(a, b [][]float64, o Options) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptyInput
	}
	if o.Window < 0 {
		return fmt.Errorf("%w: window %d", ErrBadOption, o.Window)
	}
	if o.MemoryMode != FullMatrix && o.MemoryMode != TwoRows {
		return fmt.Errorf("%w: memory mode %d", ErrBadOption, o.MemoryMode)
	}
	if o.ReturnPath && o.MemoryMode != FullMatrix {
		return ErrPathNeedsMatrix
	}
	dim := len(a[0])
	for i, row := range a {
		if len(row) != dim {
			return fmt.Errorf("%w: a[%d] has %d values, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
	}
	for j, row := range b {
		if len(row) != dim {
			return fmt.Errorf("%w: b[%d] has %d values, want %d", ErrDimensionMismatch, j, len(row), dim)
		}
	}
	return nil
}

func fullMatrix(a, b [][]float64, window int) [][]float64 {
	n, m := len(a), len(b)
	inf := math.Inf(1)
	dp := make([][]float64, n+1)
	for i := range dp {
		dp[i] = make([]float64, m+1)
	}
	for i := 1; i <= n; i++ {
		dp[i][0] = inf
	}
	for j := 1; j <= m; j++ {
		dp[0][j] = inf
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if abs(i-j) > window {
				dp[i][j] = inf
				continue
			}
			cost := floats.Distance(a[i-1], b[j-1], 2)
			dp[i][j] = cost + min3(dp[i-1][j], dp[i][j-1], dp[i-1][j-1])
		}
	}
	return dp
}

func twoRows(a, b [][]float64, window int) float64 {
	n, m := len(a), len(b)
	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}
	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if abs(i-j) > window {
				curr[j] = inf
				continue
			}
			cost := floats.Distance(a[i-1], b[j-1], 2)
			curr[j] = cost + min3(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

// backtrack walks from (n,m) to (1,1) following the cheapest predecessor,
// preferring the diagonal on ties.
func backtrack(dp [][]float64) Path {
	i, j := len(dp)-1, len(dp[0])-1
	path := Path{{I: i - 1, J: j - 1}}
	for i > 1 || j > 1 {
		switch {
		case i == 1:
			j--
		case j == 1:
			i--
		default:
			diag, up, left := dp[i-1][j-1], dp[i-1][j], dp[i][j-1]
			switch {
			case diag <= up && diag <= left:
				i--
				j--
			case up <= left:
				i--
			default:
				j--
			}
		}
		path = append(path, Coord{I: i - 1, J: j - 1})
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
