package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"strings" // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers
	"go.uber.org/zap"

	"github.com/iliyamo/revticket-testdata/internal/utils"
)

// UserIDKey is the echo context key holding the resolved user id.
const UserIDKey = "user_id"

// Identity resolves the calling user the way the payment service does:
// a non-blank X-User-Id header (set by the API gateway) wins, otherwise
// the user id is read from a Bearer token signed with secret.  The
// middleware never rejects a request; handlers decide what a missing
// identity means.
func Identity(secret string, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := strings.TrimSpace(c.Request().Header.Get("X-User-Id")); id != "" {
				c.Set(UserIDKey, id)
				return next(c)
			}

			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || secret == "" {
				return next(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			id, err := utils.ParseUserID(secret, raw)
			if err != nil {
				log.Warn("failed to extract userId from Authorization header", zap.Error(err))
				return next(c)
			}
			c.Set(UserIDKey, id)
			return next(c)
		}
	}
}

// UserID returns the id stored by Identity, or "" when none was resolved.
func UserID(c echo.Context) string {
	id, _ := c.Get(UserIDKey).(string)
	return id
}
