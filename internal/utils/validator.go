package utils

import (
	"reflect"
	"strings"

	apperrors "github.com/banlamduan-school/gradebook-service/internal/errors"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Validator wraps the struct validator with the gradebook's custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate validates struct tags and converts failures to the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// ValidateStudentID enforces the 4-digit numeric student id format.
func ValidateStudentID(fl validator.FieldLevel) bool {
	return models.IsStudentID(fl.Field().String())
}

// ValidateGradeLevel accepts the nine grade keys p1..p6, m1..m3.
func ValidateGradeLevel(fl validator.FieldLevel) bool {
	return models.IsGradeLevel(fl.Field().String())
}

// ValidateAcademicYear accepts a 4-digit Buddhist-era year.
func ValidateAcademicYear(fl validator.FieldLevel) bool {
	return models.IsAcademicYear(fl.Field().String())
}

// ValidateSemester accepts the two semester ordinals.
func ValidateSemester(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n == 1 || n == 2
}

// ValidateSubjectCategory accepts the three curriculum sections.
func ValidateSubjectCategory(fl validator.FieldLevel) bool {
	switch models.SubjectCategory(fl.Field().String()) {
	case models.CategoryCore, models.CategoryAdditional, models.CategoryActivities:
		return true
	}
	return false
}

// registerCustomValidators registers all custom validators
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("student_id", ValidateStudentID)
	validate.RegisterValidation("grade_level", ValidateGradeLevel)
	validate.RegisterValidation("academic_year", ValidateAcademicYear)
	validate.RegisterValidation("semester", ValidateSemester)
	validate.RegisterValidation("subject_category", ValidateSubjectCategory)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
