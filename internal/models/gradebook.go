package models

// GradeMap holds one student's recorded grades keyed by subject code.
// Values are either a numeric score as entered ("4", "3.5", ... "0") or a
// pass/fail token for development activities ("ผ่าน" / "ไม่ผ่าน").
type GradeMap map[string]string

// GradeBook partitions recorded grades by academic year, then student id.
type GradeBook map[string]map[string]GradeMap

// GradeValues are the selectable scores for core and additional subjects.
var GradeValues = []string{"4", "3.5", "3", "2.5", "2", "1.5", "1", "0"}

// ActivityGradeValues are the selectable results for development activities.
var ActivityGradeValues = []string{"ผ่าน", "ไม่ผ่าน"}

// Year returns the per-student grade maps of one academic year, creating the
// bucket when absent.
func (b GradeBook) Year(year string) map[string]GradeMap {
	if b[year] == nil {
		b[year] = make(map[string]GradeMap)
	}
	return b[year]
}

// StudentGrades returns the recorded grades of one student for one year;
// never nil.
func (b GradeBook) StudentGrades(year, studentID string) GradeMap {
	if grades := b[year][studentID]; grades != nil {
		return grades
	}
	return GradeMap{}
}

// Clone returns a deep copy of the grade book.
func (b GradeBook) Clone() GradeBook {
	out := make(GradeBook, len(b))
	for year, students := range b {
		out[year] = make(map[string]GradeMap, len(students))
		for id, grades := range students {
			m := make(GradeMap, len(grades))
			for code, v := range grades {
				m[code] = v
			}
			out[year][id] = m
		}
	}
	return out
}
