package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestEdgeGuard_RedirectsWithoutToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := EdgeGuard("secret", "/")(func(c echo.Context) error {
		t.Fatalf("should not reach page handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestEdgeGuard_RedirectsOnBadToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signedToken(t, "secret", -time.Minute)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := EdgeGuard("secret", "/")(func(c echo.Context) error {
		t.Fatalf("should not reach page handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}

func TestEdgeGuard_AllowsValidCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signedToken(t, "secret", time.Hour)})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := EdgeGuard("secret", "/")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("valid navigation was blocked")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
