package handler

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/psb-properties/property-report-api/internal/dto"
	"github.com/psb-properties/property-report-api/internal/models"
	appErrors "github.com/psb-properties/property-report-api/pkg/errors"
	"github.com/psb-properties/property-report-api/pkg/response"
)

type reportService interface {
	Submit(ctx context.Context, req *dto.SubmitReportRequest) (*dto.SubmissionResult, error)
	List(ctx context.Context) ([]models.Report, error)
	Get(ctx context.Context, id string) (*models.ReportBundle, error)
	Document(ctx context.Context, id string) (string, error)
	RegenerateNarrative(ctx context.Context, id string) (*dto.NarrativeResponse, error)
	PreviousGoals(ctx context.Context) (*dto.PreviousGoalsResponse, error)
	CurrentPeriod() *dto.CurrentPeriodResponse
}

// ReportHandler wires the report pipeline to HTTP endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit godoc
// @Summary Submit a weekly or monthly report
// @Tags Reports
// @Accept json
// @Produce json
// @Param request body dto.SubmitReportRequest true "Report submission"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List godoc
// @Summary List all reports, newest period first
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports)
}

// Get godoc
// @Summary Fetch one report with all child collections
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "report id is required"))
		return
	}

	bundle, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, bundle)
}

// Document godoc
// @Summary Download the rendered report document
// @Tags Reports
// @Produce application/pdf
// @Param id path string true "Report ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/{id}/document [get]
func (h *ReportHandler) Document(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "report id is required"))
		return
	}

	path, err := h.service.Document(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// RegenerateNarrative godoc
// @Summary Regenerate the narrative for an existing report
// @Tags Reports
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id}/narrative [post]
func (h *ReportHandler) RegenerateNarrative(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "report id is required"))
		return
	}

	result, err := h.service.RegenerateNarrative(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// PreviousGoals godoc
// @Summary Latest submitted goal pair for form auto-population
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/previous-goals [get]
func (h *ReportHandler) PreviousGoals(c *gin.Context) {
	goals, err := h.service.PreviousGoals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goals)
}

// CurrentPeriod godoc
// @Summary Upcoming period end and month-end flag
// @Tags Periods
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /periods/current [get]
func (h *ReportHandler) CurrentPeriod(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.CurrentPeriod())
}
