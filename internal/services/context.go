package services

import "context"

type contextKey string

const (
	recordIDKey  contextKey = "record_id"
	chalkKey     contextKey = "chalk"
	exportIDKey  contextKey = "export_id"
	requestIDKey contextKey = "request_id"
)

// WithRecordID annotates context with a roster record identifier.
func WithRecordID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, recordIDKey, id)
}

// RecordIDFromContext extracts the roster record identifier if present.
func RecordIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(recordIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithChalk annotates context with the chalk being processed.
func WithChalk(ctx context.Context, chalk string) context.Context {
	if chalk == "" {
		return ctx
	}
	return context.WithValue(ctx, chalkKey, chalk)
}

// ChalkFromContext returns the chalk label if present.
func ChalkFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(chalkKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithExportID annotates context with the remote export run identifier.
func WithExportID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, exportIDKey, id)
}

// ExportIDFromContext returns the export run identifier if present.
func ExportIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(exportIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
