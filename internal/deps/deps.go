package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sys/unix"
)

// Tool is an external program swingmatch shells out to.
type Tool struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
}

// Status is the result of resolving one Tool.
type Status struct {
	Tool
	Path      string
	Available bool
	Detail    string
}

// Check resolves each tool. Bare names are looked up on PATH; commands that
// contain a separator are used as given and must be executable.
func Check(tools ...Tool) []Status {
	results := make([]Status, len(tools))
	for i, tool := range tools {
		tool.Command = strings.TrimSpace(tool.Command)
		results[i] = resolve(tool)
	}
	return results
}

func resolve(tool Tool) Status {
	status := Status{Tool: tool}
	if tool.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	path, err := exec.LookPath(tool.Command)
	if err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound):
			status.Detail = fmt.Sprintf("%q not found on PATH", tool.Command)
		default:
			status.Detail = fmt.Sprintf("%q is not usable: %v", tool.Command, err)
		}
		return status
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		status.Detail = fmt.Sprintf("%s is not executable: %v", path, err)
		return status
	}
	status.Path = path
	status.Available = true
	return status
}

// Missing returns the required tools that did not resolve.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}
