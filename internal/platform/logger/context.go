package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type to avoid collisions in context values.
type contextKey struct{}

// loggerKey is the context key under which request-scoped loggers are stored.
var loggerKey = contextKey{}

// WithLogger returns a copy of ctx carrying the given logger.
// Middleware uses this to attach a request-scoped logger (with trace ID
// and request metadata) that downstream layers can retrieve.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger stored in ctx, or the process default
// logger if none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
		return log
	}
	return slog.Default()
}
