package models

import (
	"strconv"
	"testing"
	"time"
)

func TestRosterClone(t *testing.T) {
	roster := Roster{
		"p1": {"1": {{ID: "1001", Name: "A", Number: 1}}},
	}

	clone := roster.Clone()
	clone["p1"]["1"][0].Retained = true
	clone["p1"]["2"] = []Student{{ID: "1002", Name: "B", Number: 1}}

	if roster["p1"]["1"][0].Retained {
		t.Error("clone shares student slices with the original")
	}
	if _, ok := roster["p1"]["2"]; ok {
		t.Error("clone shares room maps with the original")
	}
}

func TestRosterFind(t *testing.T) {
	roster := Roster{
		"p1": {"1": {{ID: "1001", Name: "A", Number: 1}}},
		"m2": {"3": {{ID: "2001", Name: "B", Number: 4}}},
	}

	student, grade, room, ok := roster.Find("2001")
	if !ok || grade != "m2" || room != "3" || student.Name != "B" {
		t.Errorf("Find(2001) = %+v %s/%s ok=%v", student, grade, room, ok)
	}

	if _, _, _, ok := roster.Find("9999"); ok {
		t.Error("unknown id must not be found")
	}
}

func TestSortRoom(t *testing.T) {
	students := []Student{
		{ID: "1003", Number: 12},
		{ID: "1001", Number: 1},
		{ID: "1002", Number: 5},
	}
	SortRoom(students)
	for i, want := range []int{1, 5, 12} {
		if students[i].Number != want {
			t.Fatalf("position %d: expected number %d, got %d", i, want, students[i].Number)
		}
	}
}

func TestGradeProgression(t *testing.T) {
	if next, ok := NextGrade("p6"); !ok || next != "m1" {
		t.Errorf("p6 must feed into m1, got %q ok=%v", next, ok)
	}
	if _, ok := NextGrade(TerminalGrade); ok {
		t.Error("m3 has no next grade")
	}
	if _, ok := NextGrade("k1"); ok {
		t.Error("unknown keys have no next grade")
	}

	for _, g := range GradeLevels {
		if !IsGradeLevel(g) {
			t.Errorf("%s should be a known grade level", g)
		}
	}
	if IsGradeLevel("p7") {
		t.Error("p7 is not a grade level")
	}

	if !IsPrimary("p1") || !IsPrimary("p6") {
		t.Error("p1..p6 are primary")
	}
	if IsPrimary("m1") {
		t.Error("m1 is not primary")
	}
}

func TestAcademicYears(t *testing.T) {
	current := CurrentAcademicYear()
	wantCurrent := strconv.Itoa(time.Now().Year() + 543)
	if current != wantCurrent {
		t.Errorf("expected Buddhist-era year %s, got %s", wantCurrent, current)
	}

	options := AcademicYearOptions()
	if len(options) != 5 {
		t.Fatalf("expected 5 year options, got %d", len(options))
	}
	if options[0] != current {
		t.Errorf("options must start at the current year, got %s", options[0])
	}
	for i := 1; i < len(options); i++ {
		prev, _ := strconv.Atoi(options[i-1])
		cur, _ := strconv.Atoi(options[i])
		if cur != prev-1 {
			t.Errorf("options must descend by one: %v", options)
		}
	}
}

func TestGradeBook(t *testing.T) {
	book := GradeBook{}

	year := book.Year("2568")
	year["1001"] = GradeMap{"ท11101": "4"}
	if book["2568"]["1001"]["ท11101"] != "4" {
		t.Error("Year must return the live bucket")
	}

	if grades := book.StudentGrades("2569", "1001"); grades == nil {
		t.Error("StudentGrades must never return nil")
	}

	clone := book.Clone()
	clone["2568"]["1001"]["ท11101"] = "1"
	if book["2568"]["1001"]["ท11101"] != "4" {
		t.Error("clone shares grade maps with the original")
	}
}
