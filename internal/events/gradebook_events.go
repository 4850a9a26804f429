package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of gradebook events
type EventType string

const (
	// Roster events
	EventStudentAdded   EventType = "roster.student_added"
	EventStudentRemoved EventType = "roster.student_removed"

	// Grade events
	EventGradesRecorded EventType = "grades.recorded"

	// Promotion events
	EventStudentsPromoted EventType = "promotion.completed"
)

// GradebookEvent is the base event structure for all gradebook events
type GradebookEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type StudentAddedEvent struct {
	StudentID  string `json:"student_id"`
	Name       string `json:"name"`
	GradeLevel string `json:"grade_level"`
	Classroom  string `json:"classroom"`
	Number     int    `json:"number"`
}

type StudentRemovedEvent struct {
	StudentID    string `json:"student_id"`
	GradeLevel   string `json:"grade_level"`
	Classroom    string `json:"classroom"`
	AcademicYear string `json:"academic_year"`
}

type GradesRecordedEvent struct {
	AcademicYear string `json:"academic_year"`
	GradeLevel   string `json:"grade_level"`
	Classroom    string `json:"classroom"`
	StudentCount int    `json:"student_count"`
}

type StudentsPromotedEvent struct {
	Promoted       int `json:"promoted"`
	Retained       int `json:"retained"`
	Graduated      int `json:"graduated"`
	TransferredOut int `json:"transferred_out"`
}

// Event factory functions

func NewStudentAddedEvent(studentID, name, grade, room string, number int) *GradebookEvent {
	return &GradebookEvent{
		ID:        GenerateEventID(),
		Type:      EventStudentAdded,
		Timestamp: time.Now(),
		Source:    "gradebook-service",
		Version:   "1.0",
		Data: StudentAddedEvent{
			StudentID:  studentID,
			Name:       name,
			GradeLevel: grade,
			Classroom:  room,
			Number:     number,
		},
	}
}

func NewStudentRemovedEvent(studentID, grade, room, year string) *GradebookEvent {
	return &GradebookEvent{
		ID:        GenerateEventID(),
		Type:      EventStudentRemoved,
		Timestamp: time.Now(),
		Source:    "gradebook-service",
		Version:   "1.0",
		Data: StudentRemovedEvent{
			StudentID:    studentID,
			GradeLevel:   grade,
			Classroom:    room,
			AcademicYear: year,
		},
	}
}

func NewGradesRecordedEvent(year, grade, room string, studentCount int) *GradebookEvent {
	return &GradebookEvent{
		ID:        GenerateEventID(),
		Type:      EventGradesRecorded,
		Timestamp: time.Now(),
		Source:    "gradebook-service",
		Version:   "1.0",
		Data: GradesRecordedEvent{
			AcademicYear: year,
			GradeLevel:   grade,
			Classroom:    room,
			StudentCount: studentCount,
		},
	}
}

func NewStudentsPromotedEvent(promoted, retained, graduated, transferredOut int) *GradebookEvent {
	return &GradebookEvent{
		ID:        GenerateEventID(),
		Type:      EventStudentsPromoted,
		Timestamp: time.Now(),
		Source:    "gradebook-service",
		Version:   "1.0",
		Data: StudentsPromotedEvent{
			Promoted:       promoted,
			Retained:       retained,
			Graduated:      graduated,
			TransferredOut: transferredOut,
		},
	}
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return uuid.NewString()
}
