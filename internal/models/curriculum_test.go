package models

import (
	"encoding/json"
	"testing"
)

func TestHours(t *testing.T) {
	t.Run("NumericForm", func(t *testing.T) {
		h := HoursFromCount(80)
		if v, ok := h.Numeric(); !ok || v != 80 {
			t.Errorf("expected numeric 80, got %v ok=%v", v, ok)
		}
		if h.SecondaryCredits() != 0 {
			t.Error("plain counts carry no secondary credits")
		}
	})

	t.Run("StringFormNeverNumeric", func(t *testing.T) {
		// A digit string stays a string; the two forms are not interchangeable.
		h := HoursFromSpec("80")
		if _, ok := h.Numeric(); ok {
			t.Error("string-typed hours must not report numeric")
		}
	})

	t.Run("SecondaryCredits", func(t *testing.T) {
		cases := []struct {
			spec string
			want float64
		}{
			{"1.5 (60)", 1.5},
			{"0.5 (20)", 0.5},
			{"2(80)", 2},
			{"1.0 (40)", 1.0},
			{"(40)", 0},
			{"60 ชั่วโมง", 0},
			{"", 0},
		}
		for _, tc := range cases {
			if got := HoursFromSpec(tc.spec).SecondaryCredits(); got != tc.want {
				t.Errorf("SecondaryCredits(%q) = %v, want %v", tc.spec, got, tc.want)
			}
		}
	})

	t.Run("JSONKeepsEnteredForm", func(t *testing.T) {
		numeric, err := json.Marshal(HoursFromCount(80))
		if err != nil {
			t.Fatal(err)
		}
		if string(numeric) != "80" {
			t.Errorf("numeric hours must serialize as a number, got %s", numeric)
		}

		str, err := json.Marshal(HoursFromSpec("1.5 (60)"))
		if err != nil {
			t.Fatal(err)
		}
		if string(str) != `"1.5 (60)"` {
			t.Errorf("spec hours must serialize as a string, got %s", str)
		}

		var h Hours
		if err := json.Unmarshal([]byte("40"), &h); err != nil {
			t.Fatal(err)
		}
		if v, ok := h.Numeric(); !ok || v != 40 {
			t.Errorf("expected numeric 40 after unmarshal, got %v ok=%v", v, ok)
		}

		if err := json.Unmarshal([]byte(`"1.0 (40)"`), &h); err != nil {
			t.Fatal(err)
		}
		if _, ok := h.Numeric(); ok {
			t.Error("string json must unmarshal to string form")
		}
	})
}

func TestGradeCurriculumJSON(t *testing.T) {
	t.Run("PrimaryShapeRoundTrip", func(t *testing.T) {
		in := GradeCurriculum{
			Title: "ประถมศึกษาปีที่ 1",
			Level: "p1",
			Kind:  KindPrimary,
			Primary: &PrimaryProgram{
				CoreSubjects: []Subject{
					{Code: "ท11101", Name: "ภาษาไทย", Hours: HoursFromCount(200)},
				},
				Totals: HourTotals{Core: 200, Total: 200},
			},
		}

		data, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}

		// Primary programs keep their subject lists at the top level.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatal(err)
		}
		if _, ok := raw["coreSubjects"]; !ok {
			t.Fatalf("primary blob missing top-level coreSubjects: %s", data)
		}
		if _, ok := raw["semesters"]; ok {
			t.Errorf("primary blob must not nest under semesters: %s", data)
		}

		var out GradeCurriculum
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out.Kind != KindPrimary || out.Primary == nil || out.Secondary != nil {
			t.Fatalf("round trip lost the primary shape: %+v", out)
		}
		if out.Primary.CoreSubjects[0].Code != "ท11101" {
			t.Errorf("subject lost in round trip: %+v", out.Primary)
		}
		if out.Title != in.Title || out.Level != in.Level {
			t.Errorf("header fields lost: %+v", out)
		}
	})

	t.Run("SecondaryShapeRoundTrip", func(t *testing.T) {
		in := GradeCurriculum{
			Title: "มัธยมศึกษาปีที่ 1",
			Level: "m1",
			Kind:  KindSecondary,
			Secondary: &SecondaryProgram{
				Semester1: SemesterProgram{
					CoreSubjects: []Subject{
						{Code: "ท21101", Name: "ภาษาไทย", Hours: HoursFromSpec("1.5 (60)")},
					},
					TotalHours: 60,
				},
			},
		}

		data, err := json.Marshal(in)
		if err != nil {
			t.Fatal(err)
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatal(err)
		}
		if _, ok := raw["semesters"]; !ok {
			t.Fatalf("secondary blob must nest under semesters: %s", data)
		}

		var out GradeCurriculum
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out.Kind != KindSecondary || out.Secondary == nil || out.Primary != nil {
			t.Fatalf("round trip lost the secondary shape: %+v", out)
		}
		if out.Secondary.Semester1.CoreSubjects[0].Hours.String() != "1.5 (60)" {
			t.Errorf("hours spec lost: %+v", out.Secondary.Semester1)
		}
	})

	t.Run("KindDerivedFromShapeOnLoad", func(t *testing.T) {
		// Blobs written before the explicit kind existed carry no marker;
		// the shape decides.
		var primary GradeCurriculum
		if err := json.Unmarshal([]byte(`{"title":"t","level":"p2","coreSubjects":[]}`), &primary); err != nil {
			t.Fatal(err)
		}
		if primary.Kind != KindPrimary {
			t.Errorf("expected primary kind, got %s", primary.Kind)
		}

		var secondary GradeCurriculum
		if err := json.Unmarshal([]byte(`{"title":"t","level":"m2","semesters":{"semester1":{},"semester2":{}}}`), &secondary); err != nil {
			t.Fatal(err)
		}
		if secondary.Kind != KindSecondary {
			t.Errorf("expected secondary kind, got %s", secondary.Kind)
		}
	})
}

func TestSectionHelpers(t *testing.T) {
	p := &PrimaryProgram{}
	if p.Section(CategoryCore) != &p.CoreSubjects {
		t.Error("core section mismatch")
	}
	if p.Section(CategoryActivities) != &p.DevelopmentActivities {
		t.Error("activities section mismatch")
	}
	if p.Section("homeroom") != nil {
		t.Error("unknown category must yield nil")
	}

	s := &SecondaryProgram{}
	sem, err := s.Semester(2)
	if err != nil || sem != &s.Semester2 {
		t.Errorf("semester 2 lookup failed: %v", err)
	}
	if _, err := s.Semester(0); err == nil {
		t.Error("semester 0 must fail")
	}
	if _, err := s.Semester(3); err == nil {
		t.Error("semester 3 must fail")
	}
}
