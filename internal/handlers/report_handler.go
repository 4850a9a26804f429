package handlers

import (
	"net/http"

	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	BaseHandler
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService, logger utils.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   NewBaseHandler(logger),
		reportService: reportService,
	}
}

// GetReportCard renders a student's report card
// @Summary Get report card
// @Description Builds the per-semester report card with GPA figures
// @Tags reports
// @Produce json
// @Param id path string true "Student ID"
// @Param year query string true "Academic year"
// @Success 200 {object} services.ReportCard
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/report [get]
func (h *ReportHandler) GetReportCard(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}
	year := RequireQuery(c, "year")
	if year == "" {
		return
	}

	h.LogRequest(c, "Building report card", "student_id", studentID, "academic_year", year)

	report, err := h.reportService.ReportCard(c.Request.Context(), year, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListAcademicYears returns the selectable Buddhist-era years
// @Summary List academic years
// @Description Returns the current year and the four preceding years
// @Tags meta
// @Produce json
// @Success 200 {array} string
// @Router /academic-years [get]
func (h *ReportHandler) ListAcademicYears(c *gin.Context) {
	c.JSON(http.StatusOK, models.AcademicYearOptions())
}
