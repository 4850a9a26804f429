package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document keys, matching the three blobs of the legacy client storage.
const (
	keyRoster     = "studentsData"
	keyCurriculum = "curriculumData"
	keyGradeBook  = "allGrades"
)

// StoreDocument is one persisted JSON snapshot.
type StoreDocument struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (StoreDocument) TableName() string {
	return "store_documents"
}

// Store is the gorm-backed document store implementing
// repositories.Repository.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates the document table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&StoreDocument{})
}

func (s *Store) Roster() repositories.RosterRepository         { return rosterStore{s} }
func (s *Store) Curriculum() repositories.CurriculumRepository { return curriculumStore{s} }
func (s *Store) GradeBook() repositories.GradeBookRepository   { return gradeBookStore{s} }

// load unmarshals the document behind key into dest. A missing document is
// not an error: dest keeps its zero value.
func (s *Store) load(ctx context.Context, key string, dest interface{}) error {
	var doc StoreDocument
	err := s.db.WithContext(ctx).First(&doc, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load document %q: %w", key, err)
	}
	if err := json.Unmarshal(doc.Payload, dest); err != nil {
		return fmt.Errorf("failed to decode document %q: %w", key, err)
	}
	return nil
}

// save upserts the document behind key.
func (s *Store) save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %q: %w", key, err)
	}
	doc := StoreDocument{Key: key, Payload: payload, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to save document %q: %w", key, err)
	}
	return nil
}

type rosterStore struct{ *Store }

func (r rosterStore) Load(ctx context.Context) (models.Roster, error) {
	roster := models.Roster{}
	if err := r.load(ctx, keyRoster, &roster); err != nil {
		return nil, err
	}
	return roster, nil
}

func (r rosterStore) Save(ctx context.Context, roster models.Roster) error {
	return r.save(ctx, keyRoster, roster)
}

type curriculumStore struct{ *Store }

func (c curriculumStore) Load(ctx context.Context) (models.Curriculum, error) {
	curriculum := models.Curriculum{}
	if err := c.load(ctx, keyCurriculum, &curriculum); err != nil {
		return nil, err
	}
	return curriculum, nil
}

func (c curriculumStore) Save(ctx context.Context, curriculum models.Curriculum) error {
	return c.save(ctx, keyCurriculum, curriculum)
}

type gradeBookStore struct{ *Store }

func (g gradeBookStore) Load(ctx context.Context) (models.GradeBook, error) {
	book := models.GradeBook{}
	if err := g.load(ctx, keyGradeBook, &book); err != nil {
		return nil, err
	}
	return book, nil
}

func (g gradeBookStore) Save(ctx context.Context, book models.GradeBook) error {
	return g.save(ctx, keyGradeBook, book)
}
