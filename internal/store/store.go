package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"swingmatch/internal/config"
)

// timestampLayout keeps a fixed fraction width so created_at sorts as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrAmbiguousID indicates an ID prefix matched more than one comparison.
var ErrAmbiguousID = errors.New("ambiguous comparison id")

// Comparison is one recorded engine run.
type Comparison struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Reference  string    `json:"reference"`
	UserSource string    `json:"user_source,omitempty"`
	Similarity float64   `json:"similarity"`
	Feedback   []string  `json:"feedback"`
	FrameCount int       `json:"frame_count"`
}

// ListFilter narrows List results. A zero Limit returns every row.
type ListFilter struct {
	Reference string
	Limit     int
}

// Store manages comparison history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a comparison, assigning an ID and timestamp when unset.
func (s *Store) Record(ctx context.Context, c Comparison) (Comparison, error) {
	if strings.TrimSpace(c.Reference) == "" {
		return Comparison{}, errors.New("comparison reference is required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if c.Feedback == nil {
		c.Feedback = []string{}
	}
	feedbackJSON, err := json.Marshal(c.Feedback)
	if err != nil {
		return Comparison{}, fmt.Errorf("marshal feedback: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO comparisons (
            id, created_at, reference, user_source, similarity, feedback_json, frame_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.CreatedAt.Format(timestampLayout),
		c.Reference,
		nullableString(c.UserSource),
		c.Similarity,
		string(feedbackJSON),
		c.FrameCount,
	)
	if err != nil {
		return Comparison{}, fmt.Errorf("insert comparison: %w", err)
	}
	return c, nil
}

// Get fetches a comparison by ID. A missing row returns nil without error.
func (s *Store) Get(ctx context.Context, id string) (*Comparison, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+comparisonColumns+` FROM comparisons WHERE id = ?`, id)
	c, err := scanComparison(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get comparison: %w", err)
	}
	return c, nil
}

// Resolve finds the comparison whose ID starts with prefix.
func (s *Store) Resolve(ctx context.Context, prefix string) (*Comparison, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+comparisonColumns+` FROM comparisons WHERE id LIKE ? ESCAPE '\' ORDER BY created_at DESC LIMIT 2`,
		escapeLike(prefix)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("resolve comparison: %w", err)
	}
	defer rows.Close()

	matches, err := scanComparisons(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousID, prefix)
	}
}

// List returns comparisons newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Comparison, error) {
	query := `SELECT ` + comparisonColumns + ` FROM comparisons`
	var args []any
	if filter.Reference != "" {
		query += ` WHERE reference = ?`
		args = append(args, filter.Reference)
	}
	query += ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: %w", err)
	}
	defer rows.Close()
	return scanComparisons(rows)
}

// Clear removes comparisons. An empty reference removes everything.
func (s *Store) Clear(ctx context.Context, reference string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if reference == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM comparisons`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM comparisons WHERE reference = ?`, reference)
	}
	if err != nil {
		return 0, fmt.Errorf("clear comparisons: %w", err)
	}
	return res.RowsAffected()
}
