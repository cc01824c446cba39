package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/policy"
	"github.com/practicewell/records-system/internal/core/ports"
)

const defaultAuditLimit = 100

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /api/admin/audit — most recent entries first.
//
// @Summary      List audit trail entries
// @Tags         audit
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries to return (default 100)"
// @Success      200    {array}   domain.AuditEntry
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/admin/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if err := policy.CanManageTherapists(principal); err != nil {
		return err
	}

	limit := int64(defaultAuditLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	entries, err := h.repo.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
