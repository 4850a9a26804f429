package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"

	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// sheetColumn is one subject column of an exported grade sheet. Code is the
// effective grade key, synthesized for junior-high activities without one.
type sheetColumn struct {
	Code string
	Name string
}

// classSheet is the assembled grade sheet of one classroom.
type classSheet struct {
	Columns  []sheetColumn
	Students []models.Student
	Grades   map[string]models.GradeMap
}

func (s *exportService) buildClassSheet(ctx context.Context, year, grade, room string) (*classSheet, error) {
	if !models.IsGradeLevel(grade) {
		return nil, ErrInvalidGradeLevel
	}

	roster, err := s.repo.Roster().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	students := roster[grade][room]
	if students == nil {
		return nil, ErrClassroomNotFound
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

	grades := make(map[string]models.GradeMap, len(students))
	for _, student := range students {
		grades[student.ID] = book.StudentGrades(year, student.ID)
	}

	return &classSheet{
		Columns:  sheetColumns(&program),
		Students: students,
		Grades:   grades,
	}, nil
}

// sheetColumns lists the subject columns in grade-entry order: core,
// additional, then development activities; junior-high grades emit both
// semesters back to back.
func sheetColumns(program *models.GradeCurriculum) []sheetColumn {
	var columns []sheetColumn

	appendSection := func(subjects []models.Subject, semester int) {
		for _, subject := range subjects {
			code := subject.Code
			if code == "" && semester > 0 {
				code = ActivityCode(subject.Name, semester)
			}
			columns = append(columns, sheetColumn{Code: code, Name: subject.Name})
		}
	}

	switch program.Kind {
	case models.KindPrimary:
		appendSection(program.Primary.CoreSubjects, 0)
		appendSection(program.Primary.AdditionalSubjects, 0)
		appendSection(program.Primary.DevelopmentActivities, 0)
	case models.KindSecondary:
		for ordinal, semester := range []*models.SemesterProgram{
			&program.Secondary.Semester1, &program.Secondary.Semester2,
		} {
			appendSection(semester.CoreSubjects, 0)
			appendSection(semester.AdditionalSubjects, 0)
			appendSection(semester.DevelopmentActivities, ordinal+1)
		}
	}

	return columns
}

func (s *exportService) ClassGradeSheetXLSX(ctx context.Context, year, grade, room string) ([]byte, error) {
	sheet, err := s.buildClassSheet(ctx, year, grade, room)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Grades"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := append([]string{"Number", "Student ID", "Name"}, columnHeaders(sheet.Columns)...)
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, student := range sheet.Students {
		row := studentRow(student, sheet.Columns, sheet.Grades[student.ID])
		for colIndex, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address data cell: %w", err)
			}
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *exportService) ClassGradeSheetCSV(ctx context.Context, year, grade, room string) ([]byte, error) {
	sheet, err := s.buildClassSheet(ctx, year, grade, room)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := append([]string{"Number", "Student ID", "Name"}, columnHeaders(sheet.Columns)...)
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, student := range sheet.Students {
		row := make([]string, 0, len(sheet.Columns)+3)
		for _, v := range studentRow(student, sheet.Columns, sheet.Grades[student.ID]) {
			row = append(row, fmt.Sprint(v))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

func columnHeaders(columns []sheetColumn) []string {
	headers := make([]string, 0, len(columns))
	for _, column := range columns {
		if column.Code != "" {
			headers = append(headers, column.Code)
			continue
		}
		headers = append(headers, column.Name)
	}
	return headers
}

func studentRow(student models.Student, columns []sheetColumn, grades models.GradeMap) []interface{} {
	row := []interface{}{student.Number, student.ID, student.Name}
	for _, column := range columns {
		row = append(row, grades[column.Code])
	}
	return row
}
