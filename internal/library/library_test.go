package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"swingmatch/internal/archive"
	"swingmatch/internal/logging"
	"swingmatch/internal/motion"
	"swingmatch/internal/services"
	"swingmatch/internal/testsupport"
)

func openTemp(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "references"), logging.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return lib
}

func TestAddLoadList(t *testing.T) {
	lib := openTemp(t)
	ctx := context.Background()

	for i, shot := range []string{"pull", "Cover Drive", "hook"} {
		if _, err := lib.Add(ctx, shot, testsupport.RandomMotion(int64(i), 20+i), false); err != nil {
			t.Fatalf("Add(%q): %v", shot, err)
		}
	}

	entries, err := lib.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantShots := []string{"cover_drive", "hook", "pull"}
	for i, entry := range entries {
		if entry.Shot != wantShots[i] {
			t.Fatalf("entry %d shot = %q, want %q", i, entry.Shot, wantShots[i])
		}
		if entry.Joints != motion.JointCount {
			t.Fatalf("entry %d joints = %d", i, entry.Joints)
		}
	}
	if entries[0].Name != "Cover Drive" {
		t.Fatalf("display name = %q", entries[0].Name)
	}
	if entries[0].Frames != 21 {
		t.Fatalf("cover_drive frames = %d, want 21", entries[0].Frames)
	}

	m, err := lib.Load("COVER drive")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := testsupport.RandomMotion(1, 21)
	if len(m) != len(want) || m[3][motion.LeftWrist] != want[3][motion.LeftWrist] {
		t.Fatalf("loaded motion does not match stored motion")
	}
}

func TestAddRefusesOverwriteUnlessReplace(t *testing.T) {
	lib := openTemp(t)
	ctx := context.Background()
	if _, err := lib.Add(ctx, "cut", testsupport.RandomMotion(1, 5), false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := lib.Add(ctx, "cut", testsupport.RandomMotion(2, 9), false); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	entry, err := lib.Add(ctx, "cut", testsupport.RandomMotion(2, 9), true)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if entry.Frames != 9 {
		t.Fatalf("expected replaced reference with 9 frames, got %d", entry.Frames)
	}
}

func TestLoadMissingShot(t *testing.T) {
	lib := openTemp(t)
	_, err := lib.Load("sweep")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if services.ExitCode(err) != services.ExitNotFound {
		t.Fatalf("unexpected exit code %d", services.ExitCode(err))
	}
}

func TestInvalidShotName(t *testing.T) {
	lib := openTemp(t)
	for _, name := range []string{"", "   ", "!!!"} {
		if _, err := lib.Add(context.Background(), name, testsupport.RandomMotion(1, 2), false); !errors.Is(err, services.ErrValidation) {
			t.Fatalf("Add(%q): expected ErrValidation, got %v", name, err)
		}
	}
}

func TestAddRejectsInvalidMotion(t *testing.T) {
	lib := openTemp(t)
	_, err := lib.Add(context.Background(), "pull", motion.Motion{}, false)
	if !errors.Is(err, motion.ErrEmptyMotion) {
		t.Fatalf("expected ErrEmptyMotion, got %v", err)
	}
}

func TestImportCopiesArchive(t *testing.T) {
	lib := openTemp(t)
	source := filepath.Join(t.TempDir(), "session.npz")
	if err := archive.WriteFile(source, testsupport.RandomMotion(4, 14)); err != nil {
		t.Fatalf("write source: %v", err)
	}

	entry, err := lib.Import(context.Background(), "pull", source, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	srcBytes, _ := os.ReadFile(source)
	dstBytes, _ := os.ReadFile(entry.Path)
	if string(srcBytes) != string(dstBytes) {
		t.Fatalf("imported archive differs from source")
	}

	jsonSource := filepath.Join(t.TempDir(), "session.json")
	if err := archive.WriteFile(jsonSource, testsupport.RandomMotion(5, 6)); err != nil {
		t.Fatalf("write json source: %v", err)
	}
	entry, err = lib.Import(context.Background(), "hook", jsonSource, false)
	if err != nil {
		t.Fatalf("Import json: %v", err)
	}
	if filepath.Ext(entry.Path) != ".npz" {
		t.Fatalf("expected json import to be stored as npz, got %s", entry.Path)
	}

	if _, err := lib.Import(context.Background(), "cut", filepath.Join(t.TempDir(), "missing.npz"), false); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing source, got %v", err)
	}
}

func TestListSkipsUnreadable(t *testing.T) {
	lib := openTemp(t)
	if _, err := lib.Add(context.Background(), "pull", testsupport.RandomMotion(1, 3), false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := os.WriteFile(filepath.Join(lib.Dir(), "broken.npz"), []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := os.WriteFile(filepath.Join(lib.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	entries, err := lib.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Shot != "pull" {
		t.Fatalf("expected only pull, got %+v", entries)
	}

	refs, err := lib.References()
	if err != nil {
		t.Fatalf("References: %v", err)
	}
	if len(refs) != 1 || refs[0].Name != "pull" {
		t.Fatalf("unexpected references %+v", refs)
	}
}

func TestRemove(t *testing.T) {
	lib := openTemp(t)
	ctx := context.Background()
	if _, err := lib.Add(ctx, "cut", testsupport.RandomMotion(1, 3), false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := lib.Remove(ctx, "cut"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := lib.Remove(ctx, "cut"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second remove, got %v", err)
	}
}

func TestLockRespectsContext(t *testing.T) {
	lib := openTemp(t)
	other, err := Open(lib.Dir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := other.lock.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer other.lock.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := lib.Add(ctx, "pull", testsupport.RandomMotion(1, 3), false); err == nil {
		t.Fatalf("expected Add to fail while the library is locked")
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"coverdrive":  "Coverdrive",
		"cover_drive": "Cover Drive",
		"late-cut":    "Late Cut",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}
