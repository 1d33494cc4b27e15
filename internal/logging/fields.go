package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent names the package or subsystem that emitted a line.
	FieldComponent = "component"
	// FieldRenderID correlates every line emitted by one render call.
	FieldRenderID = "render_id"
	// FieldMode is the render mode: flatten or template.
	FieldMode = "mode"
	// FieldToken is the catalog or user token a line is about.
	FieldToken = "token"
	// FieldTokenSource says which layer produced a token value.
	FieldTokenSource = "token_source"
	// FieldFilter is the filter a line is about.
	FieldFilter = "filter"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the reader what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldConfigPath is the configuration file in use.
	FieldConfigPath = "config_path"
)

type renderIDKey struct{}

// WithRenderID returns a context carrying the render correlation ID.
func WithRenderID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, renderIDKey{}, id)
}

// RenderIDFromContext returns the render ID stored by WithRenderID.
func RenderIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(renderIDKey{}).(string)
	return id, ok && id != ""
}

// ContextFields extracts the standardized attributes carried by ctx.
func ContextFields(ctx context.Context) []slog.Attr {
	if id, ok := RenderIDFromContext(ctx); ok {
		return []slog.Attr{slog.String(FieldRenderID, id)}
	}
	return nil
}

// WithContext returns logger augmented with the fields carried by ctx.
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
