package middleware

import (
	"context"
	"net/http"
	"strings"

	"shoplist-service/internal/model"
	"shoplist-service/internal/service"
	"shoplist-service/pkg/jwtutil"
	"shoplist-service/pkg/logger"
	"shoplist-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type userContextKey struct{}

// AuthMiddleware resolves bearer tokens to live accounts before the
// GraphQL layer runs. The token is parsed exactly once per request;
// downstream resolvers read the user from the context instead.
type AuthMiddleware struct {
	auth *service.AuthService
}

func NewAuthMiddleware(auth *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// LoadUser validates the Authorization header when present and attaches
// the identified user to the request context. Requests without a header
// proceed unauthenticated; the per-operation guards reject them. A header
// that is present but invalid fails the request before any resolver runs.
func (a *AuthMiddleware) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_auth_format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Warn("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		user, err := a.auth.ValidateUser(c.Request().Context(), claims.UserID)
		if err != nil {
			log.Warn("Token subject rejected",
				zap.String("user_id", claims.UserID.String()),
				zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
		}

		c.Set("user", user)
		req := c.Request()
		c.SetRequest(req.WithContext(WithUser(req.Context(), user)))

		return next(c)
	}
}

// WithUser attaches the authenticated user to the context.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous
// requests.
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey{}).(*model.User)
	if !ok {
		return nil
	}
	return user
}
