package handlers

import (
	"net/http"

	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	BaseHandler
	rosterService services.RosterService
	validator     *utils.Validator
}

// AddStudentRequest enrolls a student into a classroom.
type AddStudentRequest struct {
	GradeLevel string         `json:"gradeLevel" validate:"required,grade_level"`
	Classroom  string         `json:"classroom" validate:"required"`
	Student    models.Student `json:"student"`
}

// SetRetentionRequest toggles the repeat-year flag.
type SetRetentionRequest struct {
	Retained bool `json:"retained"`
}

// SetTransferRequest toggles the transferring-out flag.
type SetTransferRequest struct {
	TransferringOut bool `json:"transferringOut"`
}

func NewStudentHandler(
	rosterService services.RosterService,
	validator *utils.Validator,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:   NewBaseHandler(logger),
		rosterService: rosterService,
		validator:     validator,
	}
}

// AddStudent enrolls a student into a grade level and classroom
// @Summary Add student
// @Description Enrolls a new student into a classroom roster
// @Tags students
// @Accept json
// @Produce json
// @Param student body AddStudentRequest true "Student enrollment data"
// @Success 201 {object} SuccessResponse{data=models.Student}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /students [post]
func (h *StudentHandler) AddStudent(c *gin.Context) {
	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Adding student",
		"student_id", req.Student.ID, "grade_level", req.GradeLevel, "classroom", req.Classroom)

	if err := h.rosterService.AddStudent(c.Request.Context(), req.GradeLevel, req.Classroom, req.Student); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Student enrolled",
		Data:    req.Student,
	})
}

// GetStudent finds a student anywhere in the roster
// @Summary Get student
// @Description Locates a student by ID across all classrooms
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} services.StudentLocation
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}

	location, err := h.rosterService.FindStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, location)
}

// RemoveStudent removes a student and cascades grade deletion
// @Summary Remove student
// @Description Removes a student from the roster and deletes the year's grades
// @Tags students
// @Produce json
// @Param id path string true "Student ID"
// @Param grade query string true "Grade level"
// @Param room query string true "Classroom"
// @Param year query string true "Academic year"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) RemoveStudent(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}
	grade := RequireQuery(c, "grade")
	if grade == "" {
		return
	}
	room := RequireQuery(c, "room")
	if room == "" {
		return
	}
	year := RequireQuery(c, "year")
	if year == "" {
		return
	}

	h.LogRequest(c, "Removing student",
		"student_id", studentID, "grade_level", grade, "classroom", room, "academic_year", year)

	if err := h.rosterService.RemoveStudent(c.Request.Context(), grade, room, studentID, year); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Student removed",
	})
}

// SetRetention toggles a student's repeat-year flag
// @Summary Set retention flag
// @Description Marks or unmarks a student as repeating the year
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param retention body SetRetentionRequest true "Retention flag"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/retention [put]
func (h *StudentHandler) SetRetention(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}

	var req SetRetentionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Setting retention flag", "student_id", studentID, "retained", req.Retained)

	if err := h.rosterService.SetRetained(c.Request.Context(), studentID, req.Retained); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Retention flag updated",
	})
}

// SetTransfer toggles a student's transferring-out flag
// @Summary Set transfer flag
// @Description Marks or unmarks a student as transferring out
// @Tags students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param transfer body SetTransferRequest true "Transfer flag"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/transfer [put]
func (h *StudentHandler) SetTransfer(c *gin.Context) {
	studentID := ParseStringIDParam(c, "id")
	if studentID == "" {
		return
	}

	var req SetTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Setting transfer flag", "student_id", studentID, "transferring_out", req.TransferringOut)

	if err := h.rosterService.SetTransferring(c.Request.Context(), studentID, req.TransferringOut); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Transfer flag updated",
	})
}

// ListClass lists the students of one classroom
// @Summary List classroom students
// @Description Lists the students of a classroom sorted by number
// @Tags students
// @Produce json
// @Param grade path string true "Grade level"
// @Param room path string true "Classroom"
// @Success 200 {array} models.Student
// @Failure 400 {object} ErrorResponse
// @Router /classes/{grade}/{room}/students [get]
func (h *StudentHandler) ListClass(c *gin.Context) {
	grade := ParseStringIDParam(c, "grade")
	if grade == "" {
		return
	}
	room := ParseStringIDParam(c, "room")
	if room == "" {
		return
	}

	students, err := h.rosterService.ListClass(c.Request.Context(), grade, room)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}
