package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	checkKey    contextKey = "check"
	documentKey contextKey = "document"
)

// WithRunID annotates context with the lint run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCheck annotates context with the name of the check being executed.
func WithCheck(ctx context.Context, name string) context.Context {
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, checkKey, name)
}

// CheckFromContext returns the check name if present.
func CheckFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(checkKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithDocument annotates context with the path of the subtitle document.
func WithDocument(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, documentKey, path)
}

// DocumentFromContext returns the subtitle document path if present.
func DocumentFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(documentKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
