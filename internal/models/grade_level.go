package models

import (
	"regexp"
	"strconv"
	"time"
)

// The nine grade levels of the school: six primary years feeding into three
// junior-high years.
const (
	FeederGrade   = "p6" // last primary year; transfers out are possible here
	TerminalGrade = "m3" // graduating year
)

// GradeLevels lists every grade key in progression order.
var GradeLevels = []string{"p1", "p2", "p3", "p4", "p5", "p6", "m1", "m2", "m3"}

// nextGrade is the fixed progression graph. TerminalGrade maps to nothing:
// its students graduate.
var nextGrade = map[string]string{
	"p1": "p2", "p2": "p3", "p3": "p4", "p4": "p5", "p5": "p6",
	"p6": "m1", "m1": "m2", "m2": "m3",
}

// NextGrade returns the grade a student advances into, or ok=false for the
// terminal grade and for keys outside the progression graph.
func NextGrade(grade string) (string, bool) {
	next, ok := nextGrade[grade]
	return next, ok
}

// IsGradeLevel reports whether g is one of the nine known grade keys.
func IsGradeLevel(g string) bool {
	if g == TerminalGrade {
		return true
	}
	_, ok := nextGrade[g]
	return ok
}

// IsPrimary reports whether the grade belongs to the primary stage (p1..p6).
func IsPrimary(grade string) bool {
	return len(grade) == 2 && grade[0] == 'p'
}

var academicYearRe = regexp.MustCompile(`^\d{4}$`)

// IsAcademicYear reports whether y is a 4-digit Buddhist-era year.
func IsAcademicYear(y string) bool {
	return academicYearRe.MatchString(y)
}

// CurrentAcademicYear returns the running academic year in the Buddhist era
// used on all Thai school documents.
func CurrentAcademicYear() string {
	return strconv.Itoa(time.Now().Year() + 543)
}

// AcademicYearOptions returns the selectable year window: the current year
// and the four before it, newest first.
func AcademicYearOptions() []string {
	current := time.Now().Year() + 543
	years := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		years = append(years, strconv.Itoa(current-i))
	}
	return years
}
