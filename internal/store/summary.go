package store

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary aggregates similarity scores over recorded comparisons.
type Summary struct {
	Reference string  `json:"reference,omitempty"`
	Count     int     `json:"count"`
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	P90       float64 `json:"p90"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	StdDev    float64 `json:"stddev"`
}

// Summary computes similarity statistics, optionally limited to one reference.
// An empty history yields a zero Summary.
func (s *Store) Summary(ctx context.Context, reference string) (Summary, error) {
	query := `SELECT similarity FROM comparisons`
	var args []any
	if reference != "" {
		query += ` WHERE reference = ?`
		args = append(args, reference)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Summary{}, fmt.Errorf("query similarities: %w", err)
	}
	defer rows.Close()

	var scores stats.Float64Data
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return Summary{}, fmt.Errorf("scan similarity: %w", err)
		}
		scores = append(scores, v)
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate similarities: %w", err)
	}
	return summarize(reference, scores)
}

func summarize(reference string, scores stats.Float64Data) (Summary, error) {
	summary := Summary{Reference: reference, Count: scores.Len()}
	if summary.Count == 0 {
		return summary, nil
	}
	var err error
	if summary.Mean, err = scores.Mean(); err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	if summary.Median, err = scores.Median(); err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	if summary.P90, err = scores.PercentileNearestRank(90); err != nil {
		return Summary{}, fmt.Errorf("p90: %w", err)
	}
	if summary.Min, err = scores.Min(); err != nil {
		return Summary{}, fmt.Errorf("min: %w", err)
	}
	if summary.Max, err = scores.Max(); err != nil {
		return Summary{}, fmt.Errorf("max: %w", err)
	}
	if summary.StdDev, err = scores.StandardDeviation(); err != nil {
		return Summary{}, fmt.Errorf("stddev: %w", err)
	}
	for _, v := range []*float64{&summary.Mean, &summary.Median, &summary.P90, &summary.StdDev} {
		if *v, err = stats.Round(*v, 2); err != nil {
			return Summary{}, fmt.Errorf("round: %w", err)
		}
	}
	return summary, nil
}
