package handlers

import (
	"net/http"

	"github.com/banlamduan-school/gradebook-service/internal/services"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type CurriculumHandler struct {
	BaseHandler
	curriculumService services.CurriculumService
	validator         *utils.Validator
}

func NewCurriculumHandler(
	curriculumService services.CurriculumService,
	validator *utils.Validator,
	logger utils.Logger,
) *CurriculumHandler {
	return &CurriculumHandler{
		BaseHandler:       NewBaseHandler(logger),
		curriculumService: curriculumService,
		validator:         validator,
	}
}

// GetCurriculum returns the curriculum of one grade level
// @Summary Get grade curriculum
// @Description Returns the subject catalog of a grade level
// @Tags curriculum
// @Produce json
// @Param grade path string true "Grade level"
// @Success 200 {object} models.GradeCurriculum
// @Failure 404 {object} ErrorResponse
// @Router /curriculum/{grade} [get]
func (h *CurriculumHandler) GetCurriculum(c *gin.Context) {
	grade := ParseStringIDParam(c, "grade")
	if grade == "" {
		return
	}

	curriculum, err := h.curriculumService.GetGrade(c.Request.Context(), grade)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, curriculum)
}

// UpsertSubject adds or replaces a subject row
// @Summary Upsert curriculum subject
// @Description Appends a subject or replaces one at the given index
// @Tags curriculum
// @Accept json
// @Produce json
// @Param grade path string true "Grade level"
// @Param subject body services.UpsertSubjectRequest true "Subject data"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /curriculum/{grade}/subjects [put]
func (h *CurriculumHandler) UpsertSubject(c *gin.Context) {
	grade := ParseStringIDParam(c, "grade")
	if grade == "" {
		return
	}

	var req services.UpsertSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.GradeLevel = grade

	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Upserting curriculum subject",
		"grade_level", grade, "category", req.Category, "subject_code", req.Subject.Code)

	if err := h.curriculumService.UpsertSubject(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Subject saved",
	})
}

// DeleteSubject removes a subject row
// @Summary Delete curriculum subject
// @Description Removes the subject at the given index of a section
// @Tags curriculum
// @Accept json
// @Produce json
// @Param grade path string true "Grade level"
// @Param subject body services.DeleteSubjectRequest true "Subject position"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /curriculum/{grade}/subjects [delete]
func (h *CurriculumHandler) DeleteSubject(c *gin.Context) {
	grade := ParseStringIDParam(c, "grade")
	if grade == "" {
		return
	}

	var req services.DeleteSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	req.GradeLevel = grade

	if err := h.validator.Validate(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Deleting curriculum subject",
		"grade_level", grade, "category", req.Category, "index", req.Index)

	if err := h.curriculumService.DeleteSubject(c.Request.Context(), &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Subject removed",
	})
}
