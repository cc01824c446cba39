package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/api/middleware"
	"github.com/practicewell/records-system/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware and
// fast-fails before any service call when it is absent. A missing principal
// on a guarded route means the middleware did not run; treat as
// unauthenticated rather than panicking on a type assertion later.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.Principal(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return p, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
