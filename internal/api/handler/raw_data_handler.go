package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marvinpacsands/Project-List-Designers/internal/dto"
	"github.com/marvinpacsands/Project-List-Designers/internal/service"
	"github.com/marvinpacsands/Project-List-Designers/pkg/response"
)

// RawDataHandler whole-document endpoints of the data editor
type RawDataHandler struct {
	rawDataSvc service.RawDataService
}

// NewRawDataHandler creates a RawDataHandler
func NewRawDataHandler(rawDataSvc service.RawDataService) *RawDataHandler {
	return &RawDataHandler{rawDataSvc: rawDataSvc}
}

// GetRawData returns the whole board document
// GET /api/raw-data
func (h *RawDataHandler) GetRawData(c *gin.Context) {
	doc, err := h.rawDataSvc.GetRaw(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, doc)
}

// ReplaceRawData bulk-replaces the project list
// POST /api/raw-data
func (h *RawDataHandler) ReplaceRawData(c *gin.Context) {
	var req dto.RawDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request body", err.Error())
		return
	}

	resp, err := h.rawDataSvc.ReplaceRaw(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			response.BadRequest(c, 20004, "projects list is required")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}
