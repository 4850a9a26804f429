package services

import (
	"context"
	"testing"

	"github.com/banlamduan-school/gradebook-service/internal/cache"
	"github.com/banlamduan-school/gradebook-service/internal/events"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRosterFixture() (*fakeRepository, *events.MockEventPublisher, RosterService) {
	repo := newFakeRepository()
	publisher := events.NewMockEventPublisher(testLogger())
	reports := NewReportService(repo, cache.NewNoopCache(), testLogger())
	service := NewRosterService(repo, publisher, reports, utils.NewValidator(), testLogger())
	return repo, publisher, service
}

func TestRosterService_AddStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("EnrollsSortedByNumber", func(t *testing.T) {
		repo, publisher, service := newRosterFixture()

		require.NoError(t, service.AddStudent(ctx, "p1", "1", models.Student{ID: "1002", Name: "B", Number: 12}))
		require.NoError(t, service.AddStudent(ctx, "p1", "1", models.Student{ID: "1001", Name: "A", Number: 3}))

		cell := repo.roster["p1"]["1"]
		require.Len(t, cell, 2)
		assert.Equal(t, "1001", cell[0].ID, "cell must stay sorted by number")
		assert.Equal(t, "1002", cell[1].ID)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 2)
		assert.Equal(t, events.EventStudentAdded, published[0].Type)
	})

	t.Run("RejectsDuplicateIDAcrossClassrooms", func(t *testing.T) {
		_, _, service := newRosterFixture()

		require.NoError(t, service.AddStudent(ctx, "p1", "1", models.Student{ID: "1001", Name: "A", Number: 1}))
		err := service.AddStudent(ctx, "p2", "2", models.Student{ID: "1001", Name: "B", Number: 1})
		assert.ErrorIs(t, err, ErrStudentIDExists)
	})

	t.Run("RejectsDuplicateNumberInClassroom", func(t *testing.T) {
		_, _, service := newRosterFixture()

		require.NoError(t, service.AddStudent(ctx, "p1", "1", models.Student{ID: "1001", Name: "A", Number: 5}))
		err := service.AddStudent(ctx, "p1", "1", models.Student{ID: "1002", Name: "B", Number: 5})
		assert.ErrorIs(t, err, ErrStudentNumberExists)
	})

	t.Run("AllowsSameNumberInDifferentClassrooms", func(t *testing.T) {
		_, _, service := newRosterFixture()

		require.NoError(t, service.AddStudent(ctx, "p1", "1", models.Student{ID: "1001", Name: "A", Number: 5}))
		assert.NoError(t, service.AddStudent(ctx, "p1", "2", models.Student{ID: "1002", Name: "B", Number: 5}))
	})

	t.Run("RejectsUnknownGradeLevel", func(t *testing.T) {
		_, _, service := newRosterFixture()

		err := service.AddStudent(ctx, "p9", "1", models.Student{ID: "1001", Name: "A", Number: 1})
		assert.ErrorIs(t, err, ErrInvalidGradeLevel)
	})

	t.Run("RejectsMalformedStudentID", func(t *testing.T) {
		_, _, service := newRosterFixture()

		err := service.AddStudent(ctx, "p1", "1", models.Student{ID: "12", Name: "A", Number: 1})
		assert.Error(t, err)
		assert.True(t, IsValidation(err), "expected a validation error, got %v", err)
	})
}

func TestRosterService_RemoveStudent(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesAndCascadesGrades", func(t *testing.T) {
		repo, publisher, service := newRosterFixture()
		repo.roster = models.Roster{
			"p1": {"1": {{ID: "1001", Name: "A", Number: 1}, {ID: "1002", Name: "B", Number: 2}}},
		}
		repo.book = models.GradeBook{
			"2568": {
				"1001": {"ท11101": "4"},
				"1002": {"ท11101": "3"},
			},
		}

		require.NoError(t, service.RemoveStudent(ctx, "p1", "1", "1001", "2568"))

		_, _, _, ok := repo.roster.Find("1001")
		assert.False(t, ok, "student should be gone from the roster")
		assert.NotContains(t, repo.book["2568"], "1001", "grades must be deleted with the student")
		assert.Contains(t, repo.book["2568"], "1002", "other students' grades untouched")

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventStudentRemoved, published[0].Type)
	})

	t.Run("UnknownClassroom", func(t *testing.T) {
		_, _, service := newRosterFixture()
		err := service.RemoveStudent(ctx, "p1", "9", "1001", "2568")
		assert.ErrorIs(t, err, ErrClassroomNotFound)
	})

	t.Run("UnknownStudent", func(t *testing.T) {
		repo, _, service := newRosterFixture()
		repo.roster = models.Roster{"p1": {"1": {{ID: "1001", Name: "A", Number: 1}}}}

		err := service.RemoveStudent(ctx, "p1", "1", "9999", "2568")
		assert.ErrorIs(t, err, ErrStudentNotFound)
	})

	t.Run("MalformedYear", func(t *testing.T) {
		repo, _, service := newRosterFixture()
		repo.roster = models.Roster{"p1": {"1": {{ID: "1001", Name: "A", Number: 1}}}}

		err := service.RemoveStudent(ctx, "p1", "1", "1001", "25x8")
		assert.ErrorIs(t, err, ErrInvalidAcademicYear)
		assert.Zero(t, repo.rosterSaves, "nothing may be written on a rejected removal")
	})
}

func TestRosterService_Flags(t *testing.T) {
	ctx := context.Background()

	repo, _, service := newRosterFixture()
	repo.roster = models.Roster{"p6": {"1": {{ID: "1001", Name: "A", Number: 1}}}}

	require.NoError(t, service.SetRetained(ctx, "1001", true))
	student, _, _, _ := repo.roster.Find("1001")
	assert.True(t, student.Retained)

	require.NoError(t, service.SetTransferring(ctx, "1001", true))
	student, _, _, _ = repo.roster.Find("1001")
	assert.True(t, student.TransferringOut)
	assert.True(t, student.Retained, "setting one flag must not clear the other")

	require.NoError(t, service.SetRetained(ctx, "1001", false))
	student, _, _, _ = repo.roster.Find("1001")
	assert.False(t, student.Retained)

	assert.ErrorIs(t, service.SetRetained(ctx, "9999", true), ErrStudentNotFound)
	assert.ErrorIs(t, service.SetRetained(ctx, "12a4", true), ErrInvalidStudentID)
}

func TestRosterService_ListClass(t *testing.T) {
	ctx := context.Background()

	repo, _, service := newRosterFixture()
	repo.roster = models.Roster{"p1": {"1": {{ID: "1001", Name: "A", Number: 1}}}}

	students, err := service.ListClass(ctx, "p1", "1")
	require.NoError(t, err)
	assert.Len(t, students, 1)

	// An unknown cell is an empty class, not an error.
	students, err = service.ListClass(ctx, "p1", "99")
	require.NoError(t, err)
	assert.Empty(t, students)

	_, err = service.ListClass(ctx, "z1", "1")
	assert.ErrorIs(t, err, ErrInvalidGradeLevel)
}

func TestRosterService_FindStudent(t *testing.T) {
	ctx := context.Background()

	repo, _, service := newRosterFixture()
	repo.roster = models.Roster{"m2": {"3": {{ID: "2045", Name: "C", Number: 11}}}}

	location, err := service.FindStudent(ctx, "2045")
	require.NoError(t, err)
	assert.Equal(t, "m2", location.GradeLevel)
	assert.Equal(t, "3", location.Classroom)
	assert.Equal(t, "C", location.Student.Name)

	_, err = service.FindStudent(ctx, "0000")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = service.FindStudent(ctx, "abcd")
	assert.ErrorIs(t, err, ErrInvalidStudentID)
}
