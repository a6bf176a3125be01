package testsupport

import (
	"context"
	"testing"

	"swingmatch/internal/config"
	"swingmatch/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// RecordComparison inserts a comparison for tests using the provided store.
func RecordComparison(t testing.TB, st *store.Store, reference string, similarity float64, feedback ...string) store.Comparison {
	t.Helper()

	c, err := st.Record(context.Background(), store.Comparison{
		Reference:  reference,
		UserSource: "test.npz",
		Similarity: similarity,
		Feedback:   feedback,
		FrameCount: 316,
	})
	if err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return c
}
