package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
)

const consoleTimeLayout = "2006-01-02 15:04:05"

var levelStyles = []struct {
	min    slog.Level
	label  string
	colors text.Colors
}{
	{slog.LevelError, "ERROR", text.Colors{text.FgRed, text.Bold}},
	{slog.LevelWarn, "WARN", text.Colors{text.FgYellow}},
	{slog.LevelInfo, "INFO", text.Colors{text.FgCyan}},
	{slog.LevelDebug - 100, "DEBUG", text.Colors{text.FgHiBlack}},
}

// prettyHandler writes one human-readable line per record:
//
//	2024-05-01 10:00:00 INFO compare [1a2b3c4d]: comparison recorded similarity=87.5% feedback=3
//
// The component and a shortened comparison id are lifted out of the field
// list into the prefix.
type prettyHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []field
	groups    []string
	addSource bool
	color     bool
}

type field struct {
	key   string
	value slog.Value
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource, color bool) slog.Handler {
	return &prettyHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource, color: color}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, record slog.Record) error {
	fields := append([]field(nil), h.attrs...)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, h.groups, attr)
		return true
	})

	var component, comparison string
	rest := fields[:0]
	for _, f := range fields {
		switch {
		case f.key == FieldComponent && component == "":
			component = f.value.String()
		case f.key == FieldComparisonID && comparison == "":
			comparison = f.value.String()
		default:
			rest = append(rest, f)
		}
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ts.Local().Format(consoleTimeLayout))
	b.WriteByte(' ')
	b.WriteString(h.levelLabel(record.Level))
	if component != "" {
		b.WriteByte(' ')
		b.WriteString(component)
	}
	if comparison != "" {
		fmt.Fprintf(&b, " [%s]", shortID(comparison))
	}
	if component != "" || comparison != "" {
		b.WriteByte(':')
	}
	b.WriteByte(' ')
	if msg := strings.TrimSpace(record.Message); msg != "" {
		b.WriteString(msg)
	} else {
		b.WriteString("(no message)")
	}
	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range rest {
		b.WriteByte(' ')
		b.WriteString(f.key)
		b.WriteByte('=')
		b.WriteString(renderValue(f))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, b.String())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, attr := range attrs {
		clone.attrs = appendField(clone.attrs, clone.groups, attr)
	}
	return clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *prettyHandler) clone() *prettyHandler {
	c := *h
	c.attrs = append([]field(nil), h.attrs...)
	c.groups = append([]string(nil), h.groups...)
	return &c
}

func (h *prettyHandler) levelLabel(level slog.Level) string {
	for _, style := range levelStyles {
		if level < style.min {
			continue
		}
		if h.color {
			return style.colors.Sprint(style.label)
		}
		return style.label
	}
	return level.String()
}

func appendField(dst []field, groups []string, attr slog.Attr) []field {
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		if attr.Key != "" {
			groups = append(append([]string(nil), groups...), attr.Key)
		}
		for _, inner := range attr.Value.Group() {
			dst = appendField(dst, groups, inner)
		}
		return dst
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	return append(dst, field{key: key, value: attr.Value})
}

func renderValue(f field) string {
	var s string
	switch f.value.Kind() {
	case slog.KindFloat64:
		s = strconv.FormatFloat(f.value.Float64(), 'f', -1, 64)
		if f.key == FieldSimilarity {
			s += "%"
		}
		return s
	case slog.KindDuration:
		return f.value.Duration().Round(time.Millisecond).String()
	case slog.KindTime:
		return f.value.Time().UTC().Format(time.RFC3339)
	case slog.KindAny:
		s = fmt.Sprint(f.value.Any())
	default:
		s = f.value.String()
	}
	if s == "" || strings.ContainsAny(s, " \t\n=\"") {
		return strconv.Quote(s)
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
