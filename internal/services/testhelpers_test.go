package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/banlamduan-school/gradebook-service/internal/cache"
	"github.com/banlamduan-school/gradebook-service/internal/models"
	"github.com/banlamduan-school/gradebook-service/internal/repositories"
)

// fakeRepository keeps the three snapshots in memory for service tests.
type fakeRepository struct {
	roster     models.Roster
	curriculum models.Curriculum
	book       models.GradeBook

	rosterSaves int
	bookSaves   int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		roster:     models.Roster{},
		curriculum: models.Curriculum{},
		book:       models.GradeBook{},
	}
}

func (f *fakeRepository) Roster() repositories.RosterRepository         { return fakeRosterRepo{f} }
func (f *fakeRepository) Curriculum() repositories.CurriculumRepository { return fakeCurriculumRepo{f} }
func (f *fakeRepository) GradeBook() repositories.GradeBookRepository   { return fakeGradeBookRepo{f} }

type fakeRosterRepo struct{ f *fakeRepository }

func (r fakeRosterRepo) Load(ctx context.Context) (models.Roster, error) {
	return r.f.roster, nil
}

func (r fakeRosterRepo) Save(ctx context.Context, roster models.Roster) error {
	r.f.roster = roster
	r.f.rosterSaves++
	return nil
}

type fakeCurriculumRepo struct{ f *fakeRepository }

func (r fakeCurriculumRepo) Load(ctx context.Context) (models.Curriculum, error) {
	return r.f.curriculum, nil
}

func (r fakeCurriculumRepo) Save(ctx context.Context, curriculum models.Curriculum) error {
	r.f.curriculum = curriculum
	return nil
}

type fakeGradeBookRepo struct{ f *fakeRepository }

func (r fakeGradeBookRepo) Load(ctx context.Context) (models.GradeBook, error) {
	return r.f.book, nil
}

func (r fakeGradeBookRepo) Save(ctx context.Context, book models.GradeBook) error {
	r.f.book = book
	r.f.bookSaves++
	return nil
}

// memCache holds cached values in memory so cache interaction can be
// asserted without Redis. DeletePattern supports a trailing * only.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func (m *memCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
