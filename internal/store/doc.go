// Package store persists comparison history in a local SQLite database.
//
// Each comparison run records the reference it was scored against, where the
// user motion came from, the similarity and the feedback lines. The history
// feeds the `history` CLI commands and their summary statistics.
//
// The schema is versioned; a database written by a different schema version
// is rejected with ErrSchemaMismatch rather than migrated in place.
package store
