package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shashatv/vod-backend/internal/auth"
	"github.com/shashatv/vod-backend/internal/utils"
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token and injects the user id, email and role into the request context
// under "user_id", "email" and "role".
//
// Validation is two-step: the JWT must verify cryptographically and, for
// user tokens, it must also be the token currently bound in the session
// registry. A syntactically valid token that was revoked or superseded is
// rejected as not active. Admin tokens carry no registry entry and skip the
// liveness check.
func SessionAuth(secret string, registry *auth.SessionRegistry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claims, err := utils.ParseSessionToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			if claims.Role == utils.RoleUser && !registry.IsActive(claims.UserID, raw) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token not active"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("role", claims.Role)
			c.Set("token", raw)
			return next(c)
		}
	}
}
