package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	service ports.ClientService
	audit   AuditRecorder
}

func NewClientHandler(service ports.ClientService, audit AuditRecorder) *ClientHandler {
	return &ClientHandler{service: service, audit: audit}
}

// List handles GET /api/clients — the ownership-scoped roster.
//
// @Summary      List visible clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      401  {object}  errorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	clients, err := h.service.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return c.JSON(http.StatusOK, clients)
}

// Create handles POST /api/clients. The owning therapist is always the
// requester.
//
// @Summary      Create a client record
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), principal, ports.CreateClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return err
	}

	h.recordAudit(principal, domain.AuditClientCreated, created.ID)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PATCH /api/clients/:id. Only allow-listed fields are
// applied; ownership is re-checked against the stored record.
//
// @Summary      Update a client record
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to update"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/clients/{id} [patch]
func (h *ClientHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := ports.ClientUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	if req.Status != nil {
		status := domain.ClientStatus(*req.Status)
		update.Status = &status
	}

	updated, err := h.service.Update(c.Request().Context(), principal, id, update)
	if err != nil {
		return err
	}

	h.recordAudit(principal, domain.AuditClientUpdated, id)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/clients/:id with the same ownership re-check
// as Update.
//
// @Summary      Delete a client record
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Client id"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
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

	h.recordAudit(principal, domain.AuditClientDeleted, id)
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *ClientHandler) recordAudit(p domain.Principal, action domain.AuditAction, targetID int64) {
	h.audit.Enqueue(ports.AuditEventInput{
		ActorID:    p.ID,
		ActorEmail: p.Email,
		Action:     action,
		TargetID:   targetID,
		Timestamp:  time.Now().UTC(),
	})
}
