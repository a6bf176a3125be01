package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const comparisonColumns = "id, created_at, reference, user_source, similarity, feedback_json, frame_count"

func scanComparison(scanner interface{ Scan(dest ...any) error }) (*Comparison, error) {
	var (
		c            Comparison
		createdRaw   string
		userSource   sql.NullString
		feedbackJSON string
	)
	if err := scanner.Scan(
		&c.ID,
		&createdRaw,
		&c.Reference,
		&userSource,
		&c.Similarity,
		&feedbackJSON,
		&c.FrameCount,
	); err != nil {
		return nil, err
	}
	created, err := parseTimeString(createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	c.CreatedAt = created
	c.UserSource = userSource.String
	if err := json.Unmarshal([]byte(feedbackJSON), &c.Feedback); err != nil {
		return nil, fmt.Errorf("decode feedback for %s: %w", c.ID, err)
	}
	return &c, nil
}

func scanComparisons(rows *sql.Rows) ([]Comparison, error) {
	var out []Comparison
	for rows.Next() {
		c, err := scanComparison(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comparisons: %w", err)
	}
	return out, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
