package services

import (
	"context"
	"log/slog"

	"github.com/banlamduan-school/gradebook-service/internal/cache"
	"github.com/banlamduan-school/gradebook-service/internal/events"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
)

// RosterService manages student records inside the grade/classroom roster.
type RosterService interface {
	AddStudent(ctx context.Context, grade, room string, student models.Student) error
	RemoveStudent(ctx context.Context, grade, room, studentID, academicYear string) error
	SetRetained(ctx context.Context, studentID string, retained bool) error
	SetTransferring(ctx context.Context, studentID string, transferring bool) error
	FindStudent(ctx context.Context, studentID string) (*StudentLocation, error)
	ListClass(ctx context.Context, grade, room string) ([]models.Student, error)
}

// CurriculumService administers the per-grade curriculum catalog.
type CurriculumService interface {
	GetGrade(ctx context.Context, grade string) (*models.GradeCurriculum, error)
	UpsertSubject(ctx context.Context, req *UpsertSubjectRequest) error
	DeleteSubject(ctx context.Context, req *DeleteSubjectRequest) error
}

// GradeService records and reads per-subject grades.
type GradeService interface {
	SaveClassGrades(ctx context.Context, req *SaveClassGradesRequest) error
	StudentGrades(ctx context.Context, year, studentID string) (models.GradeMap, error)
}

// ReportService renders report cards with GPA/GPAX figures.
type ReportService interface {
	ReportCard(ctx context.Context, year, studentID string) (*ReportCard, error)
	InvalidateYear(ctx context.Context, year string)
	InvalidateAll(ctx context.Context)
}

// PromotionService runs the end-of-year promotion.
type PromotionService interface {
	Run(ctx context.Context) (*PromotionSummary, error)
}

// ExportService exports classroom grade sheets.
type ExportService interface {
	ClassGradeSheetXLSX(ctx context.Context, year, grade, room string) ([]byte, error)
	ClassGradeSheetCSV(ctx context.Context, year, grade, room string) ([]byte, error)
}

// ServiceManager bundles all services for handler wiring.
type ServiceManager interface {
	Roster() RosterService
	Curriculum() CurriculumService
	Grades() GradeService
	Reports() ReportService
	Promotion() PromotionService
	Export() ExportService
}

type serviceManager struct {
	roster     RosterService
	curriculum CurriculumService
	grades     GradeService
	reports    ReportService
	promotion  PromotionService
	export     ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	validator *utils.Validator,
	logger *slog.Logger,
) ServiceManager {
	reports := NewReportService(repo, cacheService, logger)
	return &serviceManager{
		roster:     NewRosterService(repo, publisher, reports, validator, logger),
		curriculum: NewCurriculumService(repo, reports, validator, logger),
		grades:     NewGradeService(repo, publisher, reports, validator, logger),
		reports:    reports,
		promotion:  NewPromotionService(repo, publisher, logger),
		export:     NewExportService(repo, logger),
	}
}

func (m *serviceManager) Roster() RosterService         { return m.roster }
func (m *serviceManager) Curriculum() CurriculumService { return m.curriculum }
func (m *serviceManager) Grades() GradeService          { return m.grades }
func (m *serviceManager) Reports() ReportService        { return m.reports }
func (m *serviceManager) Promotion() PromotionService   { return m.promotion }
func (m *serviceManager) Export() ExportService         { return m.export }
