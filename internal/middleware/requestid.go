package middleware

import (
	"shoplist-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const RequestIDKey = "X-Request-ID"

// RequestIDMiddleware assigns each request a unique id and threads a
// request-scoped logger through both the echo context and the request
// context, so GraphQL resolvers see the same logger as handlers.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(RequestIDKey)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Response().Header().Set(RequestIDKey, requestID)

		ctxLogger := logger.GetLogger().With(zap.String("request_id", requestID))
		c.Set(logger.EchoKey, ctxLogger)

		req := c.Request()
		c.SetRequest(req.WithContext(logger.WithContext(req.Context(), ctxLogger)))

		return next(c)
	}
}
