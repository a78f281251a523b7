package logging

import (
	"context"
	"log/slog"

	"loadmaster/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRecordID is the standardized structured logging key for roster record identifiers.
	FieldRecordID = "record_id"
	// FieldChalk is the standardized structured logging key for chalk labels.
	FieldChalk = "chalk"
	// FieldDoor is the standardized structured logging key for exit doors.
	FieldDoor = "door"
	// FieldExportID is the standardized structured logging key for remote export runs.
	FieldExportID = "export_id"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.RecordIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRecordID, id))
	}
	if chalk, ok := services.ChalkFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldChalk, chalk))
	}
	if id, ok := services.ExportIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldExportID, id))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
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
	return logger.With(Args(fields...)...)
}
