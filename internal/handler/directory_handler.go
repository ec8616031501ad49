package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psb-properties/property-report-api/internal/models"
	"github.com/psb-properties/property-report-api/pkg/response"
)

// DirectoryHandler serves the static portfolio and team lookups used by
// submission forms.
type DirectoryHandler struct{}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler() *DirectoryHandler {
	return &DirectoryHandler{}
}

// Properties godoc
// @Summary Managed properties grouped by portfolio
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /directory/properties [get]
func (h *DirectoryHandler) Properties(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.Properties)
}

// Team godoc
// @Summary Staff members who may submit reports
// @Tags Directory
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /directory/team [get]
func (h *DirectoryHandler) Team(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.Team)
}
