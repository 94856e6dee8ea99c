package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type loggerContextKey struct{}

// EchoKey is the echo.Context key the request-scoped logger is stored
// under by the request-id middleware.
const EchoKey = "logger"

// FromContext returns the request-scoped logger, falling back to the
// global one. Resolvers use this: the GraphQL layer only sees the request
// context, not the echo context.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerContextKey{}).(*zap.Logger); ok {
		return logger
	}
	return GetLogger()
}

// WithContext attaches a request-scoped logger to the context.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// FromEcho returns the request-scoped logger stored on the echo context,
// falling back to the global one.
func FromEcho(c echo.Context) *zap.Logger {
	if logger, ok := c.Get(EchoKey).(*zap.Logger); ok {
		return logger
	}
	return GetLogger()
}
