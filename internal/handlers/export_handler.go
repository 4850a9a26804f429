package handlers

import (
	"fmt"
	"net/http"

	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	BaseHandler
	exportService services.ExportService
}

func NewExportHandler(exportService services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler:   NewBaseHandler(logger),
		exportService: exportService,
	}
}

// ExportClassGrades downloads a classroom grade sheet
// @Summary Export classroom grades
// @Description Exports the grade sheet of a classroom as xlsx or csv
// @Tags export
// @Produce application/octet-stream
// @Param grade path string true "Grade level"
// @Param room path string true "Classroom"
// @Param year query string true "Academic year"
// @Param format query string false "xlsx or csv" default(xlsx)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /classes/{grade}/{room}/grades/export [get]
func (h *ExportHandler) ExportClassGrades(c *gin.Context) {
	grade := ParseStringIDParam(c, "grade")
	if grade == "" {
		return
	}
	room := ParseStringIDParam(c, "room")
	if room == "" {
		return
	}
	year := RequireQuery(c, "year")
	if year == "" {
		return
	}

	format := c.DefaultQuery("format", "xlsx")

	h.LogRequest(c, "Exporting classroom grades",
		"grade_level", grade, "classroom", room, "academic_year", year, "format", format)

	filename := fmt.Sprintf("grades_%s_%s_%s.%s", grade, room, year, format)

	switch format {
	case "xlsx":
		data, err := h.exportService.ClassGradeSheetXLSX(c.Request.Context(), year, grade, room)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	case "csv":
		data, err := h.exportService.ClassGradeSheetCSV(c.Request.Context(), year, grade, room)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unsupported export format",
			Details: format,
		})
	}
}
