package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	comparisonIDKey contextKey = "comparison_id"
	referenceKey    contextKey = "reference"
)

// WithComparisonID annotates ctx with the identifier of the comparison being recorded.
func WithComparisonID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, comparisonIDKey, id)
}

// ComparisonIDFromContext returns the comparison identifier if present.
func ComparisonIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(comparisonIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithReference annotates ctx with the reference name.
func WithReference(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, referenceKey, name)
}

// ReferenceFromContext returns the reference name if present.
func ReferenceFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(referenceKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ComparisonIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldComparisonID, id))
	}
	if ref, ok := ReferenceFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldReference, ref))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(args(fields)...)
}
