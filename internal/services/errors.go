package services

import (
	"errors"
	"fmt"
	"strings"

	"swingmatch/internal/motion"
)

// Markers classify failures across packages. Wrap attaches one to an error
// so the CLI can pick an exit code and a hint without knowing its origin.
var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Exit codes returned by the CLI for classified failures.
const (
	ExitFailure       = 1
	ExitValidation    = 2
	ExitNotFound      = 3
	ExitExternalTool  = 4
	ExitConfiguration = 5
)

// classes is checked in order; the first class with a matching marker wins.
var classes = []struct {
	markers []error
	exit    int
	hint    string
}{
	{[]error{ErrValidation, motion.ErrInvalidInput}, ExitValidation, ""},
	{[]error{ErrNotFound}, ExitNotFound, "check the path or run 'swingmatch reference list'"},
	{[]error{ErrTimeout}, ExitExternalTool, "raise extractor.timeout_seconds or shorten the video"},
	{[]error{ErrExternalTool}, ExitExternalTool, "run 'swingmatch doctor' to verify the extractor command"},
	{[]error{ErrConfiguration}, ExitConfiguration, "run 'swingmatch config validate'"},
	{[]error{ErrTransient}, ExitFailure, "another swingmatch process holds the lock; retry shortly"},
}

// Wrap tags err with marker and prefixes it with "component: operation:
// message", skipping empty parts. A nil marker means ErrTransient.
func Wrap(marker error, component, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransient
	}
	detail := joinNonEmpty(component, operation, message)
	if detail == "" {
		detail = "service failure"
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit status. Malformed motion input
// counts as a validation failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, c := range classes {
		if matches(err, c.markers) {
			return c.exit
		}
	}
	return ExitFailure
}

// Hint returns a short next step for a classified error, or "" when none applies.
func Hint(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range classes {
		if matches(err, c.markers) {
			return c.hint
		}
	}
	return ""
}

func matches(err error, markers []error) bool {
	for _, m := range markers {
		if errors.Is(err, m) {
			return true
		}
	}
	return false
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ": ")
}
