package services_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"swingmatch/internal/motion"
	"swingmatch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "extractor", "run", "pose extractor failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"extractor", "run", "pose extractor failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err)
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{services.Wrap(services.ErrValidation, "library", "add", "bad shot name", nil), services.ExitValidation},
		{services.Wrap(services.ErrNotFound, "library", "load", "missing", nil), services.ExitNotFound},
		{services.Wrap(services.ErrTimeout, "extractor", "run", "deadline", nil), services.ExitExternalTool},
		{fmt.Errorf("compare: %w", motion.ErrEmptyMotion), services.ExitValidation},
		{errors.New("disk full"), services.ExitFailure},
	}
	for _, tc := range cases {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
	if services.Hint(services.Wrap(services.ErrTimeout, "", "", "", nil)) == "" {
		t.Fatal("expected hint for timeout")
	}
}

func TestHintFollowsClassification(t *testing.T) {
	timeout := services.Wrap(services.ErrTimeout, "extractor", "run", "", nil)
	if !strings.Contains(services.Hint(timeout), "timeout_seconds") {
		t.Fatalf("unexpected timeout hint %q", services.Hint(timeout))
	}
	if hint := services.Hint(fmt.Errorf("load: %w", motion.ErrShapeMismatch)); hint != "" {
		t.Fatalf("expected no hint for invalid input, got %q", hint)
	}
	if services.Hint(nil) != "" || services.Hint(errors.New("plain")) != "" {
		t.Fatal("expected empty hint for unclassified errors")
	}
}
