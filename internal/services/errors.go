package services

import (
	"errors"
	"fmt"

	apperrors "github.com/banlamduan-school/gradebook-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Roster specific errors
	ErrStudentNotFound     = errors.New("student not found")
	ErrStudentIDExists     = errors.New("student id already exists")
	ErrStudentNumberExists = errors.New("student number already taken in this classroom")
	ErrClassroomNotFound   = errors.New("classroom not found")
	ErrInvalidGradeLevel   = errors.New("invalid grade level")
	ErrInvalidStudentID    = errors.New("student id must be a 4-digit number")

	// Curriculum specific errors
	ErrCurriculumNotFound     = errors.New("no curriculum for this grade level")
	ErrSemesterRequired       = errors.New("semester is required for junior-high grades")
	ErrInvalidSubjectCategory = errors.New("invalid subject category")
	ErrSubjectIndexOutOfRange = errors.New("subject index out of range")

	// Grade / report specific errors
	ErrInvalidAcademicYear = errors.New("invalid academic year")
	ErrInvalidGradeValue   = errors.New("invalid grade value")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// BusinessRuleError reports a domain rule violation with its context.
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrClassroomNotFound) ||
		errors.Is(err, ErrCurriculumNotFound)
}

// IsConflict checks if error represents a uniqueness conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrStudentIDExists) ||
		errors.Is(err, ErrStudentNumberExists)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidGradeLevel) ||
		errors.Is(err, ErrInvalidStudentID) ||
		errors.Is(err, ErrSemesterRequired) ||
		errors.Is(err, ErrInvalidSubjectCategory) ||
		errors.Is(err, ErrSubjectIndexOutOfRange) ||
		errors.Is(err, ErrInvalidAcademicYear) ||
		errors.Is(err, ErrInvalidGradeValue) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}
