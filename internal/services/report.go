package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/banlamduan-school/gradebook-service/internal/cache"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
)

// GPANotAvailable is returned when no creditable subject has a usable
// numeric grade.
const GPANotAvailable = "N/A"

// HoursPerCredit converts primary-grade instructional hours to credits:
// 80 hours per year equal one credit.
const HoursPerCredit = 80.0

// ComputeGPA computes a credit-weighted grade point average over subjects.
//
// A subject contributes only when its recorded grade parses as a number
// (pass/fail tokens and missing grades are skipped) and its credit weight is
// positive. Primary grades derive credits from the numeric hour count;
// junior-high grades carry the credit in the "credit (hours)" string.
// The result is fixed to two decimals, or GPANotAvailable when nothing
// counted.
func ComputeGPA(subjects []models.Subject, grades models.GradeMap, isPrimary bool) string {
	var totalCredits, totalGradePoints float64

	for _, subject := range subjects {
		grade, err := strconv.ParseFloat(grades[subject.Code], 64)
		if err != nil {
			continue // not graded, or graded pass/fail
		}

		var credits float64
		if isPrimary {
			if hours, ok := subject.Hours.Numeric(); ok && hours > 0 {
				credits = hours / HoursPerCredit
			}
		} else {
			credits = subject.Hours.SecondaryCredits()
		}

		if credits > 0 {
			totalCredits += credits
			totalGradePoints += grade * credits
		}
	}

	if totalCredits == 0 {
		return GPANotAvailable
	}
	// Ties round half away from zero, so 3.125 renders as "3.13".
	gpa := math.Round(totalGradePoints / totalCredits * 100)
	return fmt.Sprintf("%.2f", gpa/100)
}

var whitespaceRe = regexp.MustCompile(`\s`)

// ActivityCode synthesizes a stable grade key for a development activity
// that has no subject code: the activity name with whitespace removed, a
// hyphen, and the semester ordinal. The grade entry path and the report
// path must both use this, or recorded activity grades become unreachable.
func ActivityCode(name string, semester int) string {
	return whitespaceRe.ReplaceAllString(name, "") + "-" + strconv.Itoa(semester)
}

// ===== REPORT CARD ASSEMBLY =====

// ReportLine is one row of a report card table.
type ReportLine struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Hours string `json:"hours"`
	Grade string `json:"grade"`
}

// PrimaryReport is the whole-year report of a primary-grade student.
type PrimaryReport struct {
	CoreSubjects          []ReportLine      `json:"coreSubjects"`
	AdditionalSubjects    []ReportLine      `json:"additionalSubjects"`
	DevelopmentActivities []ReportLine      `json:"developmentActivities"`
	Totals                models.HourTotals `json:"totals"`
	GPA                   string            `json:"gpa"`
}

// SemesterReport is one junior-high semester of a report card.
type SemesterReport struct {
	Semester              int          `json:"semester"`
	CoreSubjects          []ReportLine `json:"coreSubjects"`
	AdditionalSubjects    []ReportLine `json:"additionalSubjects"`
	DevelopmentActivities []ReportLine `json:"developmentActivities"`
	TotalHours            float64      `json:"totalHours"`
	GPA                   string       `json:"gpa"`
}

// SecondaryReport is the two-semester report of a junior-high student.
type SecondaryReport struct {
	Semester1 SemesterReport `json:"semester1"`
	Semester2 SemesterReport `json:"semester2"`
	GPAX      string         `json:"gpax"`
}

// ReportCard is a student's rendered report for one academic year.
type ReportCard struct {
	StudentID     string                `json:"studentId"`
	StudentName   string                `json:"studentName"`
	StudentNumber int                   `json:"studentNumber"`
	GradeLevel    string                `json:"gradeLevel"`
	Classroom     string                `json:"classroom"`
	AcademicYear  string                `json:"academicYear"`
	Title         string                `json:"title"`
	Level         string                `json:"level"`
	Kind          models.CurriculumKind `json:"kind"`
	Primary       *PrimaryReport        `json:"primary,omitempty"`
	Secondary     *SecondaryReport      `json:"secondary,omitempty"`
}

const reportCacheTTL = 10 * time.Minute

func reportCacheKey(year, studentID string) string {
	return fmt.Sprintf("report:%s:%s", year, studentID)
}

type reportService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

// ReportCard renders the report card of one student for one academic year.
func (s *reportService) ReportCard(ctx context.Context, year, studentID string) (*ReportCard, error) {
	if !models.IsAcademicYear(year) {
		return nil, ErrInvalidAcademicYear
	}

	key := reportCacheKey(year, studentID)
	var cached ReportCard
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	student, grade, room, ok := roster.Find(studentID)
	if !ok {
		return nil, ErrStudentNotFound
	}

	curriculum, err := s.repo.Curriculum().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load curriculum: %w", err)
	}
	program, ok := curriculum[grade]
	if !ok {
		return nil, ErrCurriculumNotFound
	}

	book, err := s.repo.GradeBook().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load grade book: %w", err)
	}
	grades := book.StudentGrades(year, studentID)

	card := &ReportCard{
		StudentID:     student.ID,
		StudentName:   student.Name,
		StudentNumber: student.Number,
		GradeLevel:    grade,
		Classroom:     room,
		AcademicYear:  year,
		Title:         program.Title,
		Level:         program.Level,
		Kind:          program.Kind,
	}

	switch program.Kind {
	case models.KindPrimary:
		card.Primary = buildPrimaryReport(program.Primary, grades)
	case models.KindSecondary:
		card.Secondary = buildSecondaryReport(program.Secondary, grades)
	default:
		return nil, fmt.Errorf("curriculum for %q has unknown kind %q", grade, program.Kind)
	}

	if err := s.cache.Set(ctx, key, card, reportCacheTTL); err != nil {
		s.logger.Warn("Failed to cache report card", "key", key, "error", err)
	}

	return card, nil
}

// InvalidateYear drops every cached report of one academic year. Called
// after grade entry and roster changes.
func (s *reportService) InvalidateYear(ctx context.Context, year string) {
	if err := s.cache.DeletePattern(ctx, fmt.Sprintf("report:%s:*", year)); err != nil {
		s.logger.Warn("Failed to invalidate report cache", "year", year, "error", err)
	}
}

// InvalidateAll drops every cached report. Curriculum edits change the
// subject rows and credit weights of every year's cards, not just one.
func (s *reportService) InvalidateAll(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "report:*"); err != nil {
		s.logger.Warn("Failed to invalidate report cache", "error", err)
	}
}

func buildPrimaryReport(program *models.PrimaryProgram, grades models.GradeMap) *PrimaryReport {
	subjectsForGPA := make([]models.Subject, 0, len(program.CoreSubjects)+len(program.AdditionalSubjects))
	subjectsForGPA = append(subjectsForGPA, program.CoreSubjects...)
	subjectsForGPA = append(subjectsForGPA, program.AdditionalSubjects...)

	return &PrimaryReport{
		CoreSubjects:          reportLines(program.CoreSubjects, grades),
		AdditionalSubjects:    reportLines(program.AdditionalSubjects, grades),
		DevelopmentActivities: reportLines(program.DevelopmentActivities, grades),
		Totals:                program.Totals,
		GPA:                   ComputeGPA(subjectsForGPA, grades, true),
	}
}

func buildSecondaryReport(program *models.SecondaryProgram, grades models.GradeMap) *SecondaryReport {
	allSubjects := make([]models.Subject, 0,
		len(program.Semester1.CoreSubjects)+len(program.Semester1.AdditionalSubjects)+
			len(program.Semester2.CoreSubjects)+len(program.Semester2.AdditionalSubjects))
	allSubjects = append(allSubjects, program.Semester1.CoreSubjects...)
	allSubjects = append(allSubjects, program.Semester1.AdditionalSubjects...)
	allSubjects = append(allSubjects, program.Semester2.CoreSubjects...)
	allSubjects = append(allSubjects, program.Semester2.AdditionalSubjects...)

	return &SecondaryReport{
		Semester1: buildSemesterReport(&program.Semester1, 1, grades),
		Semester2: buildSemesterReport(&program.Semester2, 2, grades),
		GPAX:      ComputeGPA(allSubjects, grades, false),
	}
}

func buildSemesterReport(semester *models.SemesterProgram, ordinal int, grades models.GradeMap) SemesterReport {
	subjectsForGPA := make([]models.Subject, 0, len(semester.CoreSubjects)+len(semester.AdditionalSubjects))
	subjectsForGPA = append(subjectsForGPA, semester.CoreSubjects...)
	subjectsForGPA = append(subjectsForGPA, semester.AdditionalSubjects...)

	// Development activities without a code get the synthesized key so the
	// grades recorded against them resolve.
	activities := make([]ReportLine, 0, len(semester.DevelopmentActivities))
	for _, activity := range semester.DevelopmentActivities {
		code := activity.Code
		if code == "" {
			code = ActivityCode(activity.Name, ordinal)
		}
		activities = append(activities, ReportLine{
			Code:  code,
			Name:  activity.Name,
			Hours: activity.Hours.String(),
			Grade: grades[code],
		})
	}

	return SemesterReport{
		Semester:              ordinal,
		CoreSubjects:          reportLines(semester.CoreSubjects, grades),
		AdditionalSubjects:    reportLines(semester.AdditionalSubjects, grades),
		DevelopmentActivities: activities,
		TotalHours:            semester.TotalHours,
		GPA:                   ComputeGPA(subjectsForGPA, grades, false),
	}
}

func reportLines(subjects []models.Subject, grades models.GradeMap) []ReportLine {
	lines := make([]ReportLine, 0, len(subjects))
	for _, subject := range subjects {
		lines = append(lines, ReportLine{
			Code:  subject.Code,
			Name:  subject.Name,
			Hours: subject.Hours.String(),
			Grade: grades[subject.Code],
		})
	}
	return lines
}
