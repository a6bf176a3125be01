package alignment

// MemoryMode controls how the DP table is stored.
type MemoryMode int

const (
	// FullMatrix stores every row and supports path recovery.
	FullMatrix MemoryMode = iota

	// TwoRows keeps the previous and current row only.
	TwoRows
)

func (m MemoryMode) String() string {
	switch m {
	case FullMatrix:
		return "full_matrix"
	case TwoRows:
		return "two_rows"
	default:
		return "unknown"
	}
}

// Options configures an alignment.
//
//   - Window     maximum |i-j| (Sakoe-Chiba band); 0 disables the band.
//   - MemoryMode FullMatrix or TwoRows.
//   - ReturnPath backtrack the optimal warping path; requires FullMatrix.
type Options struct {
	Window     int
	MemoryMode MemoryMode
	ReturnPath bool
}

// DefaultOptions returns an unconstrained, distance-only configuration.
func DefaultOptions() Options {
	return Options{Window: 0, MemoryMode: TwoRows}
}

// Coord is one aligned index pair (0-based) on the warping path.
type Coord struct {
	I int
	J int
}

// Path is the warping path from (0,0) to (n-1,m-1).
type Path []Coord
