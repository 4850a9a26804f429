package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Hours carries the teaching-load column of a subject. Primary grades store
// a plain hour count (e.g. 80); junior-high grades store a composite
// "credit (hours)" string (e.g. "1.5 (60)"). The persisted JSON keeps
// whichever form was entered, so the type remembers it.
type Hours struct {
	raw     string
	numeric bool
}

// HoursFromCount builds a numeric hour count.
func HoursFromCount(count float64) Hours {
	return Hours{raw: strconv.FormatFloat(count, 'f', -1, 64), numeric: true}
}

// HoursFromSpec builds a composite credit/hours string such as "1.5 (60)".
func HoursFromSpec(spec string) Hours {
	return Hours{raw: spec}
}

func (h Hours) String() string { return h.raw }

// Numeric returns the hour count and whether the value was entered as a
// number. String-typed values report ok=false even when they would parse.
func (h Hours) Numeric() (float64, bool) {
	if !h.numeric {
		return 0, false
	}
	v, err := strconv.ParseFloat(h.raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var creditSpecRe = regexp.MustCompile(`^(\d+(\.\d+)?)\s*\(`)

// SecondaryCredits extracts the credit weight from a composite spec,
// the leading decimal before the first parenthesis. Zero when the value
// does not match the pattern.
func (h Hours) SecondaryCredits() float64 {
	m := creditSpecRe.FindStringSubmatch(h.raw)
	if m == nil {
		return 0
	}
	credits, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return credits
}

func (h Hours) MarshalJSON() ([]byte, error) {
	if h.numeric {
		return []byte(h.raw), nil
	}
	return json.Marshal(h.raw)
}

func (h *Hours) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		h.raw = s
		h.numeric = false
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("hours must be a number or a string: %w", err)
	}
	h.raw = strconv.FormatFloat(v, 'f', -1, 64)
	h.numeric = true
	return nil
}

// Subject is one curriculum row. Development activities may have an empty
// code; a stable code is synthesized for them when grades are recorded.
type Subject struct {
	Code  string `json:"code"`
	Name  string `json:"name" validate:"required"`
	Hours Hours  `json:"hours"`
}

// SubjectCategory names the three curriculum sections.
type SubjectCategory string

const (
	CategoryCore       SubjectCategory = "core"
	CategoryAdditional SubjectCategory = "additional"
	CategoryActivities SubjectCategory = "development"
)

// CurriculumKind discriminates the two curriculum shapes.
type CurriculumKind string

const (
	KindPrimary   CurriculumKind = "primary"
	KindSecondary CurriculumKind = "secondary"
)

// HourTotals are the precomputed per-section totals of a primary program.
type HourTotals struct {
	Core        float64 `json:"core"`
	Additional  float64 `json:"additional"`
	Development float64 `json:"development"`
	Total       float64 `json:"total"`
}

// PrimaryProgram is the whole-year curriculum of a primary grade.
type PrimaryProgram struct {
	CoreSubjects          []Subject  `json:"coreSubjects"`
	AdditionalSubjects    []Subject  `json:"additionalSubjects"`
	DevelopmentActivities []Subject  `json:"developmentActivities"`
	Totals                HourTotals `json:"totals"`
}

// SemesterProgram is one junior-high semester.
type SemesterProgram struct {
	CoreSubjects          []Subject `json:"coreSubjects"`
	AdditionalSubjects    []Subject `json:"additionalSubjects"`
	DevelopmentActivities []Subject `json:"developmentActivities"`
	TotalHours            float64   `json:"totalHours"`
}

// SecondaryProgram is the per-semester curriculum of a junior-high grade.
type SecondaryProgram struct {
	Semester1 SemesterProgram `json:"semester1"`
	Semester2 SemesterProgram `json:"semester2"`
}

// GradeCurriculum is the curriculum of one grade level as an explicit
// tagged union: exactly one of Primary or Secondary is set, matching Kind.
type GradeCurriculum struct {
	Title     string            `json:"-"`
	Level     string            `json:"-"`
	Kind      CurriculumKind    `json:"-"`
	Primary   *PrimaryProgram   `json:"-"`
	Secondary *SecondaryProgram `json:"-"`
}

// Curriculum maps grade level keys to their programs.
type Curriculum map[string]GradeCurriculum

// The persisted JSON keeps the original blob layout: primary programs carry
// their subject lists at the top level, secondary programs nest them under
// "semesters". Kind is derived from which shape is present.

type primaryCurriculumJSON struct {
	Title string `json:"title"`
	Level string `json:"level"`
	PrimaryProgram
}

type secondaryCurriculumJSON struct {
	Title     string           `json:"title"`
	Level     string           `json:"level"`
	Semesters SecondaryProgram `json:"semesters"`
}

func (g GradeCurriculum) MarshalJSON() ([]byte, error) {
	switch g.Kind {
	case KindPrimary:
		if g.Primary == nil {
			return nil, fmt.Errorf("primary curriculum %q has no program", g.Level)
		}
		return json.Marshal(primaryCurriculumJSON{Title: g.Title, Level: g.Level, PrimaryProgram: *g.Primary})
	case KindSecondary:
		if g.Secondary == nil {
			return nil, fmt.Errorf("secondary curriculum %q has no program", g.Level)
		}
		return json.Marshal(secondaryCurriculumJSON{Title: g.Title, Level: g.Level, Semesters: *g.Secondary})
	default:
		return nil, fmt.Errorf("curriculum %q has unknown kind %q", g.Level, g.Kind)
	}
}

func (g *GradeCurriculum) UnmarshalJSON(data []byte) error {
	var probe struct {
		CoreSubjects *json.RawMessage `json:"coreSubjects"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.CoreSubjects != nil {
		var p primaryCurriculumJSON
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*g = GradeCurriculum{Title: p.Title, Level: p.Level, Kind: KindPrimary, Primary: &p.PrimaryProgram}
		return nil
	}
	var s secondaryCurriculumJSON
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*g = GradeCurriculum{Title: s.Title, Level: s.Level, Kind: KindSecondary, Secondary: &s.Semesters}
	return nil
}

// Semester picks one semester of a secondary program. ordinal must be 1 or 2.
func (s *SecondaryProgram) Semester(ordinal int) (*SemesterProgram, error) {
	switch ordinal {
	case 1:
		return &s.Semester1, nil
	case 2:
		return &s.Semester2, nil
	default:
		return nil, fmt.Errorf("semester must be 1 or 2, got %d", ordinal)
	}
}

// Section returns the named subject list of a semester program.
func (s *SemesterProgram) Section(category SubjectCategory) *[]Subject {
	switch category {
	case CategoryCore:
		return &s.CoreSubjects
	case CategoryAdditional:
		return &s.AdditionalSubjects
	case CategoryActivities:
		return &s.DevelopmentActivities
	default:
		return nil
	}
}

// Section returns the named subject list of a primary program.
func (p *PrimaryProgram) Section(category SubjectCategory) *[]Subject {
	switch category {
	case CategoryCore:
		return &p.CoreSubjects
	case CategoryAdditional:
		return &p.AdditionalSubjects
	case CategoryActivities:
		return &p.DevelopmentActivities
	default:
		return nil
	}
}
