package logging

import (
	"context"
	"log/slog"

	"sublint/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCheck is the standardized structured logging key for the running check.
	FieldCheck = "check"
	// FieldRunID is the standardized structured logging key for lint run identifiers.
	FieldRunID = "run_id"
	// FieldDocument is the standardized structured logging key for the subtitle path.
	FieldDocument = "document_path"
	// FieldEventType is the standardized key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldErrorHint is the standardized key for the suggested next step after a warning.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if name, ok := services.CheckFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCheck, name))
	}
	if path, ok := services.DocumentFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldDocument, path))
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
	return logger.With(attrsToArgs(fields)...)
}
