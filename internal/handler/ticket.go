package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/service"
)

// TicketHandler exposes ticket CRUD over the TicketService.
type TicketHandler struct {
	Tickets *service.TicketService
}

func NewTicketHandler(t *service.TicketService) *TicketHandler {
	return &TicketHandler{Tickets: t}
}

// List handles GET /tickets.
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.Tickets.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// ListByProject handles GET /projects/:projectId/tickets.
func (h *TicketHandler) ListByProject(c echo.Context) error {
	tickets, err := h.Tickets.ListByProject(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tickets)
}

// Get handles GET /tickets/:id.
func (h *TicketHandler) Get(c echo.Context) error {
	ticket, err := h.Tickets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Create handles POST /tickets.
func (h *TicketHandler) Create(c echo.Context) error {
	var req model.CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	ticket, err := h.Tickets.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ticket)
}

// Update handles PUT /tickets/:id.
func (h *TicketHandler) Update(c echo.Context) error {
	var req model.UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	ticket, err := h.Tickets.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ticket)
}

// Delete handles DELETE /tickets/:id. Success carries no body.
func (h *TicketHandler) Delete(c echo.Context) error {
	if err := h.Tickets.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
