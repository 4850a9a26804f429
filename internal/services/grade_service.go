package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banlamduan-school/gradebook-service/internal/events"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
)

// SaveClassGradesRequest records the grade sheet of one classroom for one
// academic year. Grades are keyed by student id, then subject code
// (synthesized activity codes included). Existing entries for the same
// student/subject are overwritten; everything else is left alone.
type SaveClassGradesRequest struct {
	AcademicYear string                     `json:"academicYear" validate:"required,academic_year"`
	GradeLevel   string                     `json:"gradeLevel" validate:"required,grade_level"`
	Classroom    string                     `json:"classroom" validate:"required"`
	Grades       map[string]models.GradeMap `json:"grades" validate:"required"`
}

type gradeService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	reports   ReportService
	validator *utils.Validator
	logger    *slog.Logger
}

func NewGradeService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	reports ReportService,
	validator *utils.Validator,
	logger *slog.Logger,
) GradeService {
	return &gradeService{
		repo:      repo,
		publisher: publisher,
		reports:   reports,
		validator: validator,
		logger:    logger,
	}
}

func (s *gradeService) SaveClassGrades(ctx context.Context, req *SaveClassGradesRequest) error {
	s.logger.Info("Saving class grades",
		"year", req.AcademicYear, "grade", req.GradeLevel, "room", req.Classroom,
		"students", len(req.Grades))

	if err := s.validator.Validate(req); err != nil {
		return err
	}
	for studentID, grades := range req.Grades {
		for code, value := range grades {
			if !isKnownGradeValue(value) {
				return fmt.Errorf("%w: student %s subject %s value %q",
					ErrInvalidGradeValue, studentID, code, value)
			}
		}
	}

	book, err := s.repo.GradeBook().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load grade book: %w", err)
	}

	updated := book.Clone()
	year := updated.Year(req.AcademicYear)
	for studentID, grades := range req.Grades {
		if year[studentID] == nil {
			year[studentID] = make(models.GradeMap, len(grades))
		}
		for code, value := range grades {
			if value == "" {
				delete(year[studentID], code)
				continue
			}
			year[studentID][code] = value
		}
	}

	if err := s.repo.GradeBook().Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save grade book: %w", err)
	}

	s.reports.InvalidateYear(ctx, req.AcademicYear)

	event := events.NewGradesRecordedEvent(req.AcademicYear, req.GradeLevel, req.Classroom, len(req.Grades))
	if err := s.publisher.PublishGradebookEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish grades recorded event", "error", err)
	}

	return nil
}

func (s *gradeService) StudentGrades(ctx context.Context, year, studentID string) (models.GradeMap, error) {
	if !models.IsAcademicYear(year) {
		return nil, ErrInvalidAcademicYear
	}

	book, err := s.repo.GradeBook().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade book: %w", err)
	}
	return book.StudentGrades(year, studentID), nil
}

// isKnownGradeValue accepts the score dropdown values, the pass/fail
// tokens, and the empty string (which clears an entry).
func isKnownGradeValue(value string) bool {
	if value == "" {
		return true
	}
	for _, v := range models.GradeValues {
		if v == value {
			return true
		}
	}
	for _, v := range models.ActivityGradeValues {
		if v == value {
			return true
		}
	}
	return false
}
