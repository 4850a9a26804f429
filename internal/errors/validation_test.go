package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("id", "must be a 4-digit student id", "12a4")

	if err.Field != "id" {
		t.Errorf("Expected field to be 'id', got '%s'", err.Field)
	}

	if err.Message != "must be a 4-digit student id" {
		t.Errorf("Unexpected message '%s'", err.Message)
	}

	if err.Value != "12a4" {
		t.Errorf("Expected value to be '12a4', got '%v'", err.Value)
	}

	expected := "validation error on field 'id': must be a 4-digit student id"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("number", "must be greater than 0", 0))
	expected := "validation failed: number must be greater than 0"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("name", "is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("grade", "must be a valid grade level (p1-p6, m1-m3)", "grade_level", "p7")

	if err.Rule != "grade_level" {
		t.Errorf("Expected rule to be 'grade_level', got '%s'", err.Rule)
	}

	if err.Field != "grade" {
		t.Errorf("Expected field to be 'grade', got '%s'", err.Field)
	}
}
