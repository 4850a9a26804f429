package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/banlamduan-school/gradebook-service/internal/models"
)

func TestExportService_ClassGradeSheetCSV(t *testing.T) {
	repo := newFakeRepository()
	repo.roster = models.Roster{
		"m1": {"1": {
			{ID: "1001", Name: "สมชาย ใจดี", Number: 1},
			{ID: "1002", Name: "สมหญิง รักเรียน", Number: 2},
		}},
	}
	repo.curriculum = secondaryTestCurriculum()
	repo.book = models.GradeBook{
		"2568": {
			"1001": {"ท21101": "4", "ลูกเสือ-1": "ผ่าน"},
			"1002": {"ท21101": "3.5"},
		},
	}

	service := NewExportService(repo, testLogger())

	data, err := service.ClassGradeSheetCSV(context.Background(), "2568", "m1", "1")
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("exported csv does not parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}

	header := records[0]
	if header[0] != "Number" || header[1] != "Student ID" || header[2] != "Name" {
		t.Errorf("unexpected header prefix: %v", header[:3])
	}
	// Both semesters' subjects appear, activities under their synthesized key.
	wantColumns := map[string]bool{"ท21101": false, "ลูกเสือ-1": false, "ท21102": false, "ลูกเสือ-2": false}
	for _, col := range header[3:] {
		if _, ok := wantColumns[col]; ok {
			wantColumns[col] = true
		}
	}
	for col, seen := range wantColumns {
		if !seen {
			t.Errorf("column %s missing from header %v", col, header)
		}
	}

	row := records[1]
	if row[1] != "1001" {
		t.Fatalf("expected first row for student 1001, got %v", row)
	}
	cellFor := func(code string) string {
		for i, col := range header {
			if col == code {
				return row[i]
			}
		}
		t.Fatalf("column %s not found", code)
		return ""
	}
	if cellFor("ท21101") != "4" {
		t.Errorf("expected grade 4 under ท21101, got %q", cellFor("ท21101"))
	}
	if cellFor("ลูกเสือ-1") != "ผ่าน" {
		t.Errorf("activity grade not exported, got %q", cellFor("ลูกเสือ-1"))
	}
	if cellFor("ท21102") != "" {
		t.Errorf("ungraded subject must export empty, got %q", cellFor("ท21102"))
	}
}

func TestExportService_ClassGradeSheetXLSX(t *testing.T) {
	repo := newFakeRepository()
	repo.roster = models.Roster{
		"m1": {"1": {{ID: "1001", Name: "สมชาย ใจดี", Number: 1}}},
	}
	repo.curriculum = secondaryTestCurriculum()
	repo.book = models.GradeBook{}

	service := NewExportService(repo, testLogger())

	data, err := service.ClassGradeSheetXLSX(context.Background(), "2568", "m1", "1")
	if err != nil {
		t.Fatalf("xlsx export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("exported bytes are not a zip container")
	}
}

func TestExportService_Errors(t *testing.T) {
	repo := newFakeRepository()
	service := NewExportService(repo, testLogger())
	ctx := context.Background()

	if _, err := service.ClassGradeSheetCSV(ctx, "2568", "zz", "1"); err != ErrInvalidGradeLevel {
		t.Errorf("expected ErrInvalidGradeLevel, got %v", err)
	}
	if _, err := service.ClassGradeSheetCSV(ctx, "2568", "p1", "1"); err != ErrClassroomNotFound {
		t.Errorf("expected ErrClassroomNotFound, got %v", err)
	}

	repo.roster = models.Roster{"p1": {"1": {{ID: "1001", Name: "A", Number: 1}}}}
	if _, err := service.ClassGradeSheetCSV(ctx, "2568", "p1", "1"); err != ErrCurriculumNotFound {
		t.Errorf("expected ErrCurriculumNotFound, got %v", err)
	}
}
