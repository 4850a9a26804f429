package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
)

// UpsertSubjectRequest adds or replaces one subject row of a curriculum
// section. A nil Index appends; otherwise the row at Index is replaced.
// Semester is required for junior-high grades and ignored for primary ones.
type UpsertSubjectRequest struct {
	GradeLevel string                 `json:"gradeLevel" validate:"required,grade_level"`
	Semester   int                    `json:"semester,omitempty" validate:"omitempty,semester"`
	Category   models.SubjectCategory `json:"category" validate:"required,subject_category"`
	Index      *int                   `json:"index,omitempty"`
	Subject    models.Subject         `json:"subject"`
}

// DeleteSubjectRequest removes one subject row of a curriculum section.
type DeleteSubjectRequest struct {
	GradeLevel string                 `json:"gradeLevel" validate:"required,grade_level"`
	Semester   int                    `json:"semester,omitempty" validate:"omitempty,semester"`
	Category   models.SubjectCategory `json:"category" validate:"required,subject_category"`
	Index      int                    `json:"index"`
}

type curriculumService struct {
	repo      repositories.Repository
	reports   ReportService
	validator *utils.Validator
	logger    *slog.Logger
}

func NewCurriculumService(repo repositories.Repository, reports ReportService, validator *utils.Validator, logger *slog.Logger) CurriculumService {
	return &curriculumService{
		repo:      repo,
		reports:   reports,
		validator: validator,
		logger:    logger,
	}
}

func (s *curriculumService) GetGrade(ctx context.Context, grade string) (*models.GradeCurriculum, error) {
	if !models.IsGradeLevel(grade) {
		return nil, ErrInvalidGradeLevel
	}

	curriculum, err := s.repo.Curriculum().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load curriculum: %w", err)
	}

	program, ok := curriculum[grade]
	if !ok {
		return nil, ErrCurriculumNotFound
	}
	return &program, nil
}

func (s *curriculumService) UpsertSubject(ctx context.Context, req *UpsertSubjectRequest) error {
	s.logger.Info("Upserting curriculum subject",
		"grade", req.GradeLevel, "category", req.Category, "subject", req.Subject.Name)

	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if err := s.validator.Validate(&req.Subject); err != nil {
		return err
	}

	return s.mutateSection(ctx, req.GradeLevel, req.Semester, req.Category, func(section *[]models.Subject) error {
		if req.Index == nil {
			*section = append(*section, req.Subject)
			return nil
		}
		if *req.Index < 0 || *req.Index >= len(*section) {
			return ErrSubjectIndexOutOfRange
		}
		(*section)[*req.Index] = req.Subject
		return nil
	})
}

func (s *curriculumService) DeleteSubject(ctx context.Context, req *DeleteSubjectRequest) error {
	s.logger.Info("Deleting curriculum subject",
		"grade", req.GradeLevel, "category", req.Category, "index", req.Index)

	if err := s.validator.Validate(req); err != nil {
		return err
	}

	return s.mutateSection(ctx, req.GradeLevel, req.Semester, req.Category, func(section *[]models.Subject) error {
		if req.Index < 0 || req.Index >= len(*section) {
			return ErrSubjectIndexOutOfRange
		}
		*section = append((*section)[:req.Index], (*section)[req.Index+1:]...)
		return nil
	})
}

// mutateSection loads the catalog, resolves the requested subject list of
// one grade's program, applies the mutation, and saves the whole catalog.
func (s *curriculumService) mutateSection(
	ctx context.Context,
	grade string,
	semester int,
	category models.SubjectCategory,
	mutate func(*[]models.Subject) error,
) error {
	curriculum, err := s.repo.Curriculum().Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load curriculum: %w", err)
	}

	program, ok := curriculum[grade]
	if !ok {
		return ErrCurriculumNotFound
	}

	var section *[]models.Subject
	switch program.Kind {
	case models.KindPrimary:
		primary := *program.Primary
		primary.CoreSubjects = append([]models.Subject(nil), primary.CoreSubjects...)
		primary.AdditionalSubjects = append([]models.Subject(nil), primary.AdditionalSubjects...)
		primary.DevelopmentActivities = append([]models.Subject(nil), primary.DevelopmentActivities...)
		program.Primary = &primary
		section = primary.Section(category)

	case models.KindSecondary:
		secondary := *program.Secondary
		program.Secondary = &secondary
		sem, err := secondary.Semester(semester)
		if err != nil {
			return ErrSemesterRequired
		}
		sem.CoreSubjects = append([]models.Subject(nil), sem.CoreSubjects...)
		sem.AdditionalSubjects = append([]models.Subject(nil), sem.AdditionalSubjects...)
		sem.DevelopmentActivities = append([]models.Subject(nil), sem.DevelopmentActivities...)
		section = sem.Section(category)

	default:
		return fmt.Errorf("curriculum for %q has unknown kind %q", grade, program.Kind)
	}

	if section == nil {
		return ErrInvalidSubjectCategory
	}
	if err := mutate(section); err != nil {
		return err
	}

	updated := make(models.Curriculum, len(curriculum))
	for k, v := range curriculum {
		updated[k] = v
	}
	updated[grade] = program

	if err := s.repo.Curriculum().Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to save curriculum: %w", err)
	}

	// Cached report cards embed the edited subject rows, across all years.
	s.reports.InvalidateAll(ctx)
	return nil
}
