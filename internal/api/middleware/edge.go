package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// EdgeGuard protects browser navigation: when the session cannot be
// resolved it redirects to the public entry page instead of returning a
// structured error. It checks token presence and validity only; role
// checks belong to the API layer.
func EdgeGuard(jwtSecret, redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := resolvePrincipal(c, jwtSecret)
			if !ok {
				return c.Redirect(http.StatusFound, redirectTo)
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}
