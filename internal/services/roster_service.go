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

// StudentLocation is a student together with the cell they sit in.
type StudentLocation struct {
	Student    models.Student `json:"student"`
	GradeLevel string         `json:"gradeLevel"`
	Classroom  string         `json:"classroom"`
}

type rosterService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	reports   ReportService
	validator *utils.Validator
	logger    *slog.Logger
}

func NewRosterService(
	repo repositories.Repository,
	publisher events.EventPublisher,
	reports ReportService,
	validator *utils.Validator,
	logger *slog.Logger,
) RosterService {
	return &rosterService{
		repo:      repo,
		publisher: publisher,
		reports:   reports,
		validator: validator,
		logger:    logger,
	}
}

// AddStudent creates a student in the given classroom. The id must be
// unique across the whole roster; the number must be unique within the
// classroom. The cell stays sorted by number.
func (s *rosterService) AddStudent(ctx context.Context, grade, room string, student models.Student) error {
	s.logger.Info("Adding student", "student_id", student.ID, "grade", grade, "room", room)

	if !models.IsGradeLevel(grade) {
		return ErrInvalidGradeLevel
	}
	if err := s.validator.Validate(&student); err != nil {
		return err
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	if _, _, _, exists := roster.Find(student.ID); exists {
		return ErrStudentIDExists
	}
	for _, existing := range roster[grade][room] {
		if existing.Number == student.Number {
			return ErrStudentNumberExists
		}
	}

	updated := roster.Clone()
	if updated[grade] == nil {
		updated[grade] = make(map[string][]models.Student)
	}
	cell := append(updated[grade][room], student)
	models.SortRoom(cell)
	updated[grade][room] = cell

	if err := s.repo.Roster().Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	event := events.NewStudentAddedEvent(student.ID, student.Name, grade, room, student.Number)
	if err := s.publisher.PublishGradebookEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish student added event", "error", err)
	}

	return nil
}

// RemoveStudent deletes a student from a classroom and cascades: the
// student's recorded grades for the given academic year are deleted too.
func (s *rosterService) RemoveStudent(ctx context.Context, grade, room, studentID, academicYear string) error {
	s.logger.Info("Removing student", "student_id", studentID, "grade", grade, "room", room)

	if !models.IsAcademicYear(academicYear) {
		return ErrInvalidAcademicYear
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	cell, ok := roster[grade][room]
	if !ok {
		return ErrClassroomNotFound
	}

	updated := roster.Clone()
	filtered := make([]models.Student, 0, len(cell))
	found := false
	for _, student := range updated[grade][room] {
		if student.ID == studentID {
			found = true
			continue
		}
		filtered = append(filtered, student)
	}
	if !found {
		return ErrStudentNotFound
	}
	updated[grade][room] = filtered

	if err := s.repo.Roster().Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}

	// The grade cascade is a second document write with no transaction
	// spanning both. If it fails, the roster change is already saved and
	// the student's grades stay behind; the error surfaces to the caller,
	// and a retry of the removal reports the student as gone.
	book, err := s.repo.GradeBook().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load grade book: %w", err)
	}
	if _, ok := book[academicYear][studentID]; ok {
		updatedBook := book.Clone()
		delete(updatedBook[academicYear], studentID)
		if err := s.repo.GradeBook().Save(ctx, updatedBook); err != nil {
			return fmt.Errorf("failed to save grade book: %w", err)
		}
	}

	s.reports.InvalidateYear(ctx, academicYear)

	event := events.NewStudentRemovedEvent(studentID, grade, room, academicYear)
	if err := s.publisher.PublishGradebookEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish student removed event", "error", err)
	}

	return nil
}

// SetRetained toggles the repeat-this-grade flag wherever the student sits.
func (s *rosterService) SetRetained(ctx context.Context, studentID string, retained bool) error {
	return s.updateStudent(ctx, studentID, func(student *models.Student) {
		student.Retained = retained
	})
}

// SetTransferring toggles the transferring-out flag. The flag only has an
// effect for feeder-grade students at promotion time, but is stored
// wherever the student sits.
func (s *rosterService) SetTransferring(ctx context.Context, studentID string, transferring bool) error {
	return s.updateStudent(ctx, studentID, func(student *models.Student) {
		student.TransferringOut = transferring
	})
}

func (s *rosterService) updateStudent(ctx context.Context, studentID string, apply func(*models.Student)) error {
	if !models.IsStudentID(studentID) {
		return ErrInvalidStudentID
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	_, grade, room, ok := roster.Find(studentID)
	if !ok {
		return ErrStudentNotFound
	}

	updated := roster.Clone()
	cell := updated[grade][room]
	for i := range cell {
		if cell[i].ID == studentID {
			apply(&cell[i])
			break
		}
	}

	if err := s.repo.Roster().Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

// FindStudent locates a student by their 4-digit id.
func (s *rosterService) FindStudent(ctx context.Context, studentID string) (*StudentLocation, error) {
	if !models.IsStudentID(studentID) {
		return nil, ErrInvalidStudentID
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	student, grade, room, ok := roster.Find(studentID)
	if !ok {
		return nil, ErrStudentNotFound
	}

	return &StudentLocation{Student: student, GradeLevel: grade, Classroom: room}, nil
}

// ListClass returns the students of one classroom in number order. An
// unknown cell is an empty class, not an error, so grade entry can start
// from a blank room.
func (s *rosterService) ListClass(ctx context.Context, grade, room string) ([]models.Student, error) {
	if !models.IsGradeLevel(grade) {
		return nil, ErrInvalidGradeLevel
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	students := roster[grade][room]
	if students == nil {
		return []models.Student{}, nil
	}
	return students, nil
}
