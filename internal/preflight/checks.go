package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"swingmatch/internal/config"
	"swingmatch/internal/deps"
	"swingmatch/internal/library"
	"swingmatch/internal/store"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps resolves the external programs the config points at.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.Check(deps.Tool{
		Name:    "Pose extractor",
		Command: cfg.Extractor.Command,
		Purpose: "extract keypoints from video",
	})
}

// CheckExtractor reports whether the configured extractor command resolves.
func CheckExtractor(cfg *config.Config) Result {
	status := CheckSystemDeps(cfg)[0]
	if missing := deps.Missing([]deps.Status{status}); len(missing) > 0 {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	return Result{Name: status.Name, Passed: true, Detail: status.Path}
}

// CheckReferences reports how many readable references the library holds.
// An empty library passes but says so, since compare still accepts archive paths.
func CheckReferences(cfg *config.Config) Result {
	const name = "Reference library"
	lib, err := library.Open(cfg.Paths.ReferenceDir, nil)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	entries, err := lib.List()
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if len(entries) == 0 {
		return Result{Name: name, Passed: true, Detail: "empty (add one with 'swingmatch reference add')"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d reference(s)", len(entries))}
}

// CheckHistory opens the history database and reports its size.
func CheckHistory(ctx context.Context, cfg *config.Config) Result {
	const name = "History database"
	if !cfg.History.Enabled {
		return Result{Name: name, Passed: true, Detail: "disabled"}
	}
	st, err := store.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	defer st.Close()
	summary, err := st.Summary(ctx, "")
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d comparisons)", st.Path(), summary.Count)}
}
