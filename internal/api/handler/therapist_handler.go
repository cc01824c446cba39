package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

// TherapistHandler handles admin account-management requests.
type TherapistHandler struct {
	service ports.TherapistService
	audit   AuditRecorder
}

func NewTherapistHandler(service ports.TherapistService, audit AuditRecorder) *TherapistHandler {
	return &TherapistHandler{service: service, audit: audit}
}

// List handles GET /api/admin/therapists. Password hashes never appear in
// the response; the domain type excludes them from serialization.
//
// @Summary      List therapist accounts
// @Tags         therapists
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Therapist
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/therapists [get]
func (h *TherapistHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	therapists, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	if therapists == nil {
		therapists = []domain.Therapist{}
	}
	return c.JSON(http.StatusOK, therapists)
}

// Create handles POST /api/admin/therapists.
//
// @Summary      Create a therapist account
// @Tags         therapists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTherapistRequest  true  "Account details"
// @Success      201   {object}  domain.Therapist
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/therapists [post]
func (h *TherapistHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createTherapistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), principal, ports.CreateTherapistInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	h.recordAudit(principal, domain.AuditTherapistCreated, created.ID)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PATCH (and PUT) /api/admin/therapists/:id.
//
// @Summary      Update a therapist account
// @Tags         therapists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                     true  "Therapist id"
// @Param        body  body      updateTherapistRequest  true  "Fields to update"
// @Success      200   {object}  domain.Therapist
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/therapists/{id} [patch]
func (h *TherapistHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTherapistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateTherapistInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	updated, err := h.service.Update(c.Request().Context(), principal, id, input)
	if err != nil {
		return err
	}

	h.recordAudit(principal, domain.AuditTherapistUpdated, id)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/admin/therapists/:id. Self-deletion is always
// rejected, admins included.
//
// @Summary      Delete a therapist account
// @Tags         therapists
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Therapist id"
// @Success      200  {object}  successResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/therapists/{id} [delete]
func (h *TherapistHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, id); err != nil {
		return err
	}

	h.recordAudit(principal, domain.AuditTherapistDeleted, id)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *TherapistHandler) recordAudit(p domain.Principal, action domain.AuditAction, targetID int64) {
	h.audit.Enqueue(ports.AuditEventInput{
		ActorID:    p.ID,
		ActorEmail: p.Email,
		Action:     action,
		TargetID:   targetID,
		Timestamp:  time.Now().UTC(),
	})
}
