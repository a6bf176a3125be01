package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"swingmatch/internal/store"
	"swingmatch/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)

	if st.Path() != cfg.DatabasePath() {
		t.Fatalf("expected database at %s, got %s", cfg.DatabasePath(), st.Path())
	}
	st.Close()

	reopened, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	db, err := sql.Open("sqlite", cfg.DatabasePath())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 7"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	db.Close()

	st, err := store.Open(cfg)
	if err == nil {
		st.Close()
		t.Fatal("expected schema mismatch")
	}
	if !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestRecordAndGet(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	recorded := testsupport.RecordComparison(t, st, "coverdrive", 87.5,
		"Try to keep your head still during the shot.",
		"Your follow-through is incomplete.",
		"Great job! Keep practicing to maintain consistency.",
	)
	if recorded.ID == "" {
		t.Fatal("expected an ID to be assigned")
	}
	if recorded.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be assigned")
	}

	got, err := st.Get(ctx, recorded.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected comparison to be found")
	}
	if got.Reference != "coverdrive" || got.Similarity != 87.5 || got.FrameCount != 316 {
		t.Fatalf("unexpected comparison %#v", got)
	}
	if len(got.Feedback) != 3 || got.Feedback[1] != "Your follow-through is incomplete." {
		t.Fatalf("feedback not preserved: %#v", got.Feedback)
	}
	if !got.CreatedAt.Equal(recorded.CreatedAt) {
		t.Fatalf("created_at mismatch: %v vs %v", got.CreatedAt, recorded.CreatedAt)
	}

	missing, err := st.Get(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing id, got %#v", missing)
	}
}

func TestRecordRequiresReference(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	if _, err := st.Record(context.Background(), store.Comparison{Similarity: 50}); err == nil {
		t.Fatal("expected error when reference missing")
	}
}

func TestListOrderingAndFilter(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []struct {
		ref    string
		offset time.Duration
	}{
		{"pull", 0},
		{"coverdrive", 100 * time.Millisecond},
		{"pull", 120 * time.Millisecond},
		{"hook", 2 * time.Second},
	}
	for _, e := range entries {
		if _, err := st.Record(ctx, store.Comparison{
			Reference:  e.ref,
			CreatedAt:  base.Add(e.offset),
			Similarity: 70,
		}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := st.List(ctx, store.ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(all))
	}
	wantOrder := []string{"hook", "pull", "coverdrive", "pull"}
	for i, c := range all {
		if c.Reference != wantOrder[i] {
			t.Fatalf("row %d reference = %s, want %s", i, c.Reference, wantOrder[i])
		}
	}

	pulls, err := st.List(ctx, store.ListFilter{Reference: "pull", Limit: 1})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(pulls) != 1 || !pulls[0].CreatedAt.Equal(base.Add(120*time.Millisecond)) {
		t.Fatalf("expected newest pull, got %#v", pulls)
	}
}

func TestResolvePrefix(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	for _, id := range []string{"abc123", "abd456", "x_y"} {
		if _, err := st.Record(ctx, store.Comparison{ID: id, Reference: "cut", Similarity: 10}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	c, err := st.Resolve(ctx, "abc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if c == nil || c.ID != "abc123" {
		t.Fatalf("expected abc123, got %#v", c)
	}

	if _, err := st.Resolve(ctx, "ab"); !errors.Is(err, store.ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}

	c, err = st.Resolve(ctx, "x_")
	if err != nil || c == nil || c.ID != "x_y" {
		t.Fatalf("expected literal underscore match, got %#v, %v", c, err)
	}

	c, err = st.Resolve(ctx, "zzz")
	if err != nil || c != nil {
		t.Fatalf("expected no match, got %#v, %v", c, err)
	}
}

func TestSummary(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()

	empty, err := st.Summary(ctx, "")
	if err != nil {
		t.Fatalf("Summary on empty store: %v", err)
	}
	if empty.Count != 0 {
		t.Fatalf("expected zero count, got %d", empty.Count)
	}

	for _, score := range []float64{60, 70, 80, 90, 100} {
		testsupport.RecordComparison(t, st, "pull", score)
	}
	testsupport.RecordComparison(t, st, "hook", 10)

	summary, err := st.Summary(ctx, "pull")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Count != 5 {
		t.Fatalf("expected 5 rows, got %d", summary.Count)
	}
	if summary.Mean != 80 || summary.Median != 80 {
		t.Fatalf("unexpected mean/median %v/%v", summary.Mean, summary.Median)
	}
	if summary.Min != 60 || summary.Max != 100 || summary.P90 != 100 {
		t.Fatalf("unexpected min/max/p90 %v/%v/%v", summary.Min, summary.Max, summary.P90)
	}

	overall, err := st.Summary(ctx, "")
	if err != nil {
		t.Fatalf("Summary overall: %v", err)
	}
	if overall.Count != 6 || overall.Min != 10 {
		t.Fatalf("unexpected overall summary %#v", overall)
	}
}

func TestClear(t *testing.T) {
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.RecordComparison(t, st, "pull", 50)
	testsupport.RecordComparison(t, st, "hook", 50)
	testsupport.RecordComparison(t, st, "hook", 60)

	removed, err := st.Clear(ctx, "hook")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 rows removed, got %d", removed)
	}
	removed, err = st.Clear(ctx, "")
	if err != nil {
		t.Fatalf("Clear all: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 row removed, got %d", removed)
	}
}
