package models

import (
	"regexp"
	"sort"
)

var studentIDRe = regexp.MustCompile(`^\d{4}$`)

// IsStudentID reports whether id is a 4-digit numeric student id.
func IsStudentID(id string) bool {
	return studentIDRe.MatchString(id)
}

// Student is a single roster record. The id is a 4-digit numeric string and
// unique across the whole school; the number is unique within one classroom.
type Student struct {
	ID     string `json:"id" validate:"required,student_id"`
	Name   string `json:"name" validate:"required"`
	Number int    `json:"number" validate:"required,gt=0"`

	// Retained marks "repeat this grade on the next promotion run".
	// TransferringOut is only meaningful in the feeder grade (p6).
	Retained        bool `json:"retained,omitempty"`
	TransferringOut bool `json:"transferringOut,omitempty"`
}

// Roster maps grade level -> classroom -> students ordered by number.
type Roster map[string]map[string][]Student

// Clone returns a deep copy. Services mutate copies and save them wholesale,
// never the snapshot they loaded.
func (r Roster) Clone() Roster {
	out := make(Roster, len(r))
	for grade, rooms := range r {
		out[grade] = make(map[string][]Student, len(rooms))
		for room, students := range rooms {
			cell := make([]Student, len(students))
			copy(cell, students)
			out[grade][room] = cell
		}
	}
	return out
}

// SortRoom restores the ordering invariant of one classroom cell.
func SortRoom(students []Student) {
	sort.Slice(students, func(i, j int) bool {
		return students[i].Number < students[j].Number
	})
}

// Find locates a student by id. Returns the grade and room the student sits
// in, or ok=false when the id is unknown.
func (r Roster) Find(studentID string) (student Student, grade, room string, ok bool) {
	for g, rooms := range r {
		for rm, students := range rooms {
			for _, s := range students {
				if s.ID == studentID {
					return s, g, rm, true
				}
			}
		}
	}
	return Student{}, "", "", false
}
