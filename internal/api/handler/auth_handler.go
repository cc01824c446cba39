package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/api/metrics"
	"github.com/practicewell/records-system/internal/api/middleware"
	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

// AuditRecorder is the interface handlers use to enqueue audit events.
type AuditRecorder interface {
	Enqueue(event ports.AuditEventInput)
}

// AuthHandler handles login and logout.
type AuthHandler struct {
	authService   ports.AuthService
	audit         AuditRecorder
	tokenTTL      time.Duration
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, audit AuditRecorder, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		audit:         audit,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

// Login authenticates a therapist and returns a bearer token. The token is
// also set as an HTTP-only cookie so browser navigation stays authenticated
// without client-side header plumbing.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, principal, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(ports.AuditEventInput{
		ActorID:    principal.ID,
		ActorEmail: principal.Email,
		Action:     domain.AuditLogin,
		Timestamp:  time.Now().UTC(),
	})

	c.SetCookie(h.sessionCookie(token, h.tokenTTL))
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Logout clears the session cookie. The token itself stays valid until its
// expiry; there is no server-side revocation.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  successResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// sessionCookie builds the token cookie. A non-positive ttl expires it
// immediately.
func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if ttl <= 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
		MaxAge:   maxAge,
	}
}
