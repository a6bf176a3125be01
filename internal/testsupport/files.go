package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteVideo creates a placeholder video file at dir/name and returns its
// path. The extractor is always stubbed in tests, so the content only needs
// to exist.
func WriteVideo(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("\x00\x00\x00\x18ftypmp42"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
