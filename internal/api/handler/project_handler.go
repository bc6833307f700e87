package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/service"
	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

// ProjectHandler project views and updates
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler creates a ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// ListProjects returns the role-scoped project view
// GET /api/projects?email=&mode=&pmName=
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "email and mode are required")
		return
	}

	resp, err := h.projectSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateProject applies one role-scoped change to a project
// POST /api/update
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var req dto.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}
	if req.Payload.RowIndex == "" {
		response.BadRequest(c, 10001, "payload.rowIndex is required")
		return
	}

	resp, err := h.projectSvc.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, resp)
}

// SaveCustomOrder stores the user's manual card order for a PM view
// POST /api/custom-order
func (h *ProjectHandler) SaveCustomOrder(c *gin.Context) {
	var req dto.CustomOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.projectSvc.SaveCustomOrder(c.Request.Context(), &req); err != nil {
		h.handleProjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleProjectError maps project module errors
func (h *ProjectHandler) handleProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		response.NotFound(c, 20001, "project not found")
	case errors.Is(err, service.ErrInvalidMode):
		response.BadRequest(c, 20002, "mode must be one of mine, pm, ops")
	case errors.Is(err, service.ErrNotAssigned):
		response.Forbidden(c, 20003, "you are not assigned to this project")
	default:
		handleUserError(c, err)
	}
}
