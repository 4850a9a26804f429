package repositories

import (
	"context"

	"github.com/banlamduan-school/gradebook-service/internal/models"
)

// The gradebook persists three documents: the roster, the curriculum
// catalog, and the recorded grades. Each sub-repository loads and saves its
// document as a whole snapshot; callers mutate a copy and save it back, so
// no partial-update surface exists.

type RosterRepository interface {
	Load(ctx context.Context) (models.Roster, error)
	Save(ctx context.Context, roster models.Roster) error
}

type CurriculumRepository interface {
	Load(ctx context.Context) (models.Curriculum, error)
	Save(ctx context.Context, curriculum models.Curriculum) error
}

type GradeBookRepository interface {
	Load(ctx context.Context) (models.GradeBook, error)
	Save(ctx context.Context, book models.GradeBook) error
}

// Repository bundles the three stores behind one injection point.
type Repository interface {
	Roster() RosterRepository
	Curriculum() CurriculumRepository
	GradeBook() GradeBookRepository
}
