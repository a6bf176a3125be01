package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"swingmatch/internal/archive"
	"swingmatch/internal/compare"
	"swingmatch/internal/fileutil"
	"swingmatch/internal/logging"
	"swingmatch/internal/motion"
	"swingmatch/internal/services"
	"swingmatch/internal/textutil"
)

const (
	component     = "library"
	lockFileName  = ".library.lock"
	lockRetry     = 50 * time.Millisecond
	archiveSuffix = ".npz"
)

// ErrExists indicates a shot is already present and replace was not requested.
var ErrExists = fmt.Errorf("%w: reference already exists", services.ErrValidation)

// Entry describes one stored reference.
type Entry struct {
	Shot    string
	Name    string
	Path    string
	Frames  int
	Joints  int
	ModTime time.Time
}

// Library is a directory of reference archives.
type Library struct {
	dir    string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open prepares dir as a reference library, creating it when missing.
func Open(dir string, logger *slog.Logger) (*Library, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "open", "reference directory not configured", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "open", "create reference directory", err)
	}
	return &Library{
		dir:    dir,
		lock:   flock.New(filepath.Join(dir, lockFileName)),
		logger: logging.NewComponentLogger(logger, component),
	}, nil
}

// Dir returns the library directory.
func (l *Library) Dir() string {
	return l.dir
}

// NormalizeShot converts a user supplied shot name into its stored form.
func NormalizeShot(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", services.Wrap(services.ErrValidation, component, "normalize", "shot name required", nil)
	}
	shot := textutil.SanitizeToken(name)
	if shot == "unknown" && !strings.EqualFold(strings.TrimSpace(name), "unknown") {
		return "", services.Wrap(services.ErrValidation, component, "normalize", fmt.Sprintf("invalid shot name %q", name), nil)
	}
	return shot, nil
}

// DisplayName renders a shot token for people: "cover_drive" becomes "Cover Drive".
func DisplayName(shot string) string {
	words := strings.NewReplacer("_", " ", "-", " ").Replace(shot)
	return cases.Title(language.Und).String(strings.Join(strings.Fields(words), " "))
}

// List returns every reference in the library ordered by shot name. Archives
// that fail to decode are skipped with a warning.
func (l *Library) List() ([]Entry, error) {
	files, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "list", "read reference directory", err)
	}
	seen := make(map[string]bool)
	var entries []Entry
	for _, file := range files {
		if file.IsDir() || strings.HasPrefix(file.Name(), ".") || !archive.IsMotionFile(file.Name()) {
			continue
		}
		shot := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		if seen[shot] {
			continue
		}
		path, err := l.locate(shot)
		if err != nil {
			continue
		}
		entry, err := l.describe(shot, path)
		if err != nil {
			logging.WarnWithContext(l.logger, "skipping unreadable reference", "reference_unreadable",
				logging.String(logging.FieldReference, shot),
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "re-add the reference with 'swingmatch reference add'"),
				logging.String(logging.FieldImpact, "reference excluded from listings and ranking"),
			)
			seen[shot] = true
			continue
		}
		seen[shot] = true
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Shot < entries[j].Shot })
	return entries, nil
}

// Load reads the reference motion for shot.
func (l *Library) Load(shot string) (motion.Motion, error) {
	normalized, err := NormalizeShot(shot)
	if err != nil {
		return nil, err
	}
	path, err := l.locate(normalized)
	if err != nil {
		return nil, err
	}
	m, err := archive.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load reference %s: %w", normalized, err)
	}
	return m, nil
}

// References loads every readable reference for ranking.
func (l *Library) References() ([]compare.Reference, error) {
	entries, err := l.List()
	if err != nil {
		return nil, err
	}
	refs := make([]compare.Reference, 0, len(entries))
	for _, entry := range entries {
		m, err := archive.ReadFile(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("load reference %s: %w", entry.Shot, err)
		}
		refs = append(refs, compare.Reference{Name: entry.Shot, Motion: m})
	}
	return refs, nil
}

// Add stores m as the reference for shot. An existing reference is only
// overwritten when replace is set.
func (l *Library) Add(ctx context.Context, shot string, m motion.Motion, replace bool) (Entry, error) {
	if _, err := m.Validate(); err != nil {
		return Entry{}, err
	}
	return l.write(ctx, shot, replace, func(dst string) error {
		return archive.WriteFile(dst, m)
	})
}

// Import copies an existing archive into the library after checking it decodes.
// Non-npz sources are re-encoded.
func (l *Library) Import(ctx context.Context, shot, source string, replace bool) (Entry, error) {
	m, err := archive.ReadFile(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, services.Wrap(services.ErrNotFound, component, "import", fmt.Sprintf("archive %q", source), err)
		}
		return Entry{}, err
	}
	if !strings.EqualFold(filepath.Ext(source), archiveSuffix) {
		return l.Add(ctx, shot, m, replace)
	}
	return l.write(ctx, shot, replace, func(dst string) error {
		return fileutil.InstallFile(source, dst)
	})
}

// Remove deletes the reference for shot.
func (l *Library) Remove(ctx context.Context, shot string) error {
	normalized, err := NormalizeShot(shot)
	if err != nil {
		return err
	}
	return l.withLock(ctx, func() error {
		path, err := l.locate(normalized)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove reference %s: %w", normalized, err)
		}
		l.logger.Info("reference removed",
			logging.String(logging.FieldEventType, "reference_removed"),
			logging.String(logging.FieldReference, normalized),
		)
		return nil
	})
}

func (l *Library) write(ctx context.Context, shot string, replace bool, store func(dst string) error) (Entry, error) {
	normalized, err := NormalizeShot(shot)
	if err != nil {
		return Entry{}, err
	}
	dst := filepath.Join(l.dir, normalized+archiveSuffix)

	var (
		entry   Entry
		existed bool
	)
	err = l.withLock(ctx, func() error {
		existing, err := l.locate(normalized)
		existed = err == nil
		if existed && !replace {
			return fmt.Errorf("%w: %s (%s)", ErrExists, normalized, existing)
		}
		if err := store(dst); err != nil {
			return fmt.Errorf("store reference %s: %w", normalized, err)
		}
		if legacy := filepath.Join(l.dir, normalized+".json"); legacy != dst {
			_ = os.Remove(legacy)
		}
		entry, err = l.describe(normalized, dst)
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	l.logger.Info("reference stored",
		logging.String(logging.FieldEventType, "reference_stored"),
		logging.String(logging.FieldReference, normalized),
		logging.Int("frames", entry.Frames),
		logging.String("decision_result", textutil.Ternary(existed, "replaced", "created")),
	)
	return entry, nil
}

func (l *Library) withLock(ctx context.Context, fn func() error) error {
	locked, err := l.lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		return fmt.Errorf("acquire library lock: %w", err)
	}
	if !locked {
		return services.Wrap(services.ErrTransient, component, "lock", "library is locked by another process", nil)
	}
	defer func() {
		if err := l.lock.Unlock(); err != nil {
			l.logger.Warn("failed to release library lock", logging.Error(err))
		}
	}()
	return fn()
}

func (l *Library) locate(shot string) (string, error) {
	for _, ext := range archive.Extensions {
		path := filepath.Join(l.dir, shot+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, component, "locate", fmt.Sprintf("no reference for shot %q", shot), nil)
}

func (l *Library) describe(shot, path string) (Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}
	m, err := archive.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	joints, err := m.Validate()
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Shot:    shot,
		Name:    DisplayName(shot),
		Path:    path,
		Frames:  len(m),
		Joints:  joints,
		ModTime: info.ModTime(),
	}, nil
}
