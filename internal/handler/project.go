package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tickethub/tickethub/internal/apperr"
	"github.com/tickethub/tickethub/internal/model"
	"github.com/tickethub/tickethub/internal/service"
)

// ProjectHandler exposes project CRUD over the ProjectService. All
// error responses are produced by the central error handler; the
// handlers only bind, delegate and render success payloads.
type ProjectHandler struct {
	Projects *service.ProjectService
}

func NewProjectHandler(p *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{Projects: p}
}

// List handles GET /projects.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.Projects.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.Projects.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req model.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	project, err := h.Projects.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Update handles PUT /projects/:id.
func (h *ProjectHandler) Update(c echo.Context) error {
	var req model.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("Invalid request body")
	}
	project, err := h.Projects.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /projects/:id. Success carries no body.
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.Projects.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
