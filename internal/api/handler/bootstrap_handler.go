package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/service"
	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

// BootstrapHandler client identity endpoint
type BootstrapHandler struct {
	bootstrapSvc service.BootstrapService
}

// NewBootstrapHandler creates a BootstrapHandler
func NewBootstrapHandler(bootstrapSvc service.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{bootstrapSvc: bootstrapSvc}
}

// Bootstrap resolves the user and the static board options
// GET /api/bootstrap?email=
func (h *BootstrapHandler) Bootstrap(c *gin.Context) {
	var req dto.BootstrapRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "email is required")
		return
	}

	resp, err := h.bootstrapSvc.Bootstrap(c.Request.Context(), req.Email)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, resp)
}

// handleUserError maps identity lookups shared by several handlers
func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 40001, "user not found")
	default:
		response.InternalError(c)
	}
}
