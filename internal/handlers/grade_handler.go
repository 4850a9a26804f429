package handlers

import (
	"net/http"

	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type GradeHandler struct {
	BaseHandler
	gradeService services.GradeService
	validator    *utils.Validator
}

// SaveClassGradesBody carries the grade entry payload; grade level and
// classroom come from the route.
type SaveClassGradesBody struct {
	AcademicYear string                     `json:"academicYear" validate:"required,academic_year"`
	Grades       map[string]models.GradeMap `json:"grades" validate:"required"`
}

func NewGradeHandler(
	gradeService services.GradeService,
	validator *utils.Validator,
	logger utils.Logger,
) *GradeHandler {
	return &GradeHandler{
		BaseHandler:  NewBaseHandler(logger),
		gradeService: gradeService,
		validator:    validator,
	}
}

// SaveClassGrades records a classroom's grade entries
// @Summary Save classroom grades
// @Description Merges per-student grade entries for one classroom and year
// @Tags grades
// @Accept json
// @Produce json
// @Param grade path string true "Grade level"
// @Param room path string true "Classroom"
// @Param grades body SaveClassGradesBody true "Grade entries"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /classes/{grade}/{room}/grades [put]
func (h *GradeHandler) SaveClassGrades(c *gin.Context) {
	grade := ParseStringIDParam(c, "grade")
	if grade == "" {
		return
	}
	room := ParseStringIDParam(c, "room")
	if room == "" {
		return
	}

	var body SaveClassGradesBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	req := services.SaveClassGradesRequest{
		AcademicYear: body.AcademicYear,
		GradeLevel:   grade,
		Classroom:    room,
		Grades:       body.Grades,
	}

	h.LogRequest(c, "Saving classroom grades",
		"grade_level", grade, "classroom", room, "academic_year", body.AcademicYear,
		"student_count", len(body.Grades))

	if err := h.gradeService.SaveClassGrades(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Grades recorded",
	})
}

// GetStudentGrades returns one student's grade map for a year
// @Summary Get student grades
// @Description Returns the grade map of one student for an academic year
// @Tags grades
// @Produce json
// @Param id path string true "Student ID"
// @Param year query string true "Academic year"
// @Success 200 {object} models.GradeMap
// @Failure 400 {object} ErrorResponse
// @Router /students/{id}/grades [get]
func (h *GradeHandler) GetStudentGrades(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}
	year := RequireQuery(c, "year")
	if year == "" {
		return
	}

	grades, err := h.gradeService.StudentGrades(c.Request.Context(), year, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, grades)
}
