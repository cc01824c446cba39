package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/api/metrics"
	"github.com/practicewell/records-system/internal/auth"
	"github.com/practicewell/records-system/internal/core/domain"
)

// principalKey is the echo context key the resolved Principal is stored
// under.
const principalKey = "principal"

// TokenCookie is the cookie browsers hold the bearer token in.
const TokenCookie = "token"

// bearerToken extracts the raw credential from the request. Precedence is
// fixed everywhere: Authorization header first, cookie fallback.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
	}

	cookie, err := c.Cookie(TokenCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	return "", false
}

// resolvePrincipal is the canonical session resolution routine shared by
// every guard. All token failure kinds collapse into a single
// unauthenticated outcome; callers never learn why a credential was
// rejected.
func resolvePrincipal(c echo.Context, jwtSecret string) (domain.Principal, bool) {
	raw, ok := bearerToken(c)
	if !ok {
		metrics.AuthRejectedTotal.WithLabelValues("missing").Inc()
		return domain.Principal{}, false
	}

	principal, err := auth.Verify(raw, jwtSecret)
	if err != nil {
		metrics.AuthRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return domain.Principal{}, false
	}

	return principal, true
}

func rejectReason(err error) string {
	switch err {
	case auth.ErrTokenExpired:
		return "expired"
	case auth.ErrTokenSignature:
		return "signature"
	default:
		return "malformed"
	}
}

// Auth is the API guard: it resolves the principal and injects it into the
// context, or stops the request with a 401.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := resolvePrincipal(c, jwtSecret)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// Principal returns the authenticated principal injected by Auth.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
