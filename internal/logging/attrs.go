package logging

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// Attr is the attribute type accepted by every helper in this package.
type Attr = slog.Attr

func String(key, value string) Attr { return slog.String(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Similarity records a similarity percentage under the shared field key,
// rounded to the two decimals the engine reports.
func Similarity(value float64) Attr {
	return slog.Float64(FieldSimilarity, math.Round(value*100)/100)
}

// Error records err under the "error" key. A nil error is still logged so
// call sites never need to guard.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

func args(attrs []Attr) []any {
	out := make([]any, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
	}
	return out
}

func hasKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(noopHandler{})
}

// NewComponentLogger tags logger with a component name. A nil logger yields
// a no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact, filling any the caller left out.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	defaults := []Attr{
		String(FieldEventType, eventType),
		String(FieldErrorHint, "run 'swingmatch doctor' and check the log file"),
		String(FieldImpact, "result may be incomplete"),
	}
	for _, d := range defaults {
		if !hasKey(attrs, d.Key) {
			attrs = append(attrs, d)
		}
	}
	logger.Warn(msg, args(attrs)...)
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (noopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h noopHandler) WithGroup(string) slog.Handler           { return h }
