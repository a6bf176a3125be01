package archive

import (
	"encoding/json"
	"fmt"
	"io"

	"swingmatch/internal/motion"
)

// document is the JSON form: frames of [x, y, z] triples. Points decode as
// slices so a coordinate count other than three is reported, not padded.
type document struct {
	Frames [][][]float64 `json:"frames"`
}

// WriteJSON encodes m as {"frames": [[[x, y, z], ...], ...]}.
func WriteJSON(w io.Writer, m motion.Motion) error {
	if _, err := m.Validate(); err != nil {
		return err
	}
	doc := document{Frames: make([][][]float64, len(m))}
	for t, frame := range m {
		points := make([][]float64, len(frame))
		for j, p := range frame {
			points[j] = []float64{p.X, p.Y, p.Z}
		}
		doc.Frames[t] = points
	}
	enc := json.NewEncoder(w)
	return enc.Encode(doc)
}

// ReadJSON decodes the JSON form written by WriteJSON.
func ReadJSON(r io.Reader) (motion.Motion, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode motion json: %w", err)
	}
	m := make(motion.Motion, len(doc.Frames))
	for t, points := range doc.Frames {
		frame := make(motion.Frame, len(points))
		for j, p := range points {
			if len(p) != motion.Dimensions {
				return nil, fmt.Errorf("%w: frame %d joint %d has %d coordinates, want %d",
					motion.ErrInvalidInput, t, j, len(p), motion.Dimensions)
			}
			frame[j] = motion.Point{X: p[0], Y: p[1], Z: p[2]}
		}
		m[t] = frame
	}
	if _, err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
