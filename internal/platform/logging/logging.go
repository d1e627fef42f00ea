// Package logging carries an operation-scoped slog.Logger through context so
// services log with consistent per-operation fields without plumbing a logger
// argument everywhere.
package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// loggerKey is the key used to store the logger in the context.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// New builds the process-wide base logger. Production uses JSON output at
// info level; anything else gets text output with debug enabled.
func New(isProduction bool) *slog.Logger {
	if isProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// WithOperation derives a context carrying a logger enriched with a fresh
// operation id and the operation name.
func WithOperation(ctx context.Context, base *slog.Logger, operation string) context.Context {
	opLogger := base.With(
		slog.String("operation_id", uuid.NewString()),
		slog.String("operation", operation),
	)
	return WithLogger(ctx, opLogger)
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromCtx retrieves the operation-scoped logger from the context. It returns
// the default logger if none is found.
func FromCtx(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
