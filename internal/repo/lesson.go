package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/storage"
)

// LessonRepo defines the persistence operations for lessons.
type LessonRepo interface {
	// List returns the open lessons (no booking user), ordered by id.
	List(ctx context.Context) ([]domain.Lesson, error)

	// Search returns the open lessons whose title contains term, ignoring case.
	Search(ctx context.Context, term string) ([]domain.Lesson, error)

	// ListByUser returns the lessons booked by username, ignoring case.
	ListByUser(ctx context.Context, username string) ([]domain.Lesson, error)

	// ListOnDate returns every lesson, open or booked, that meets on day.
	// Lessons whose stored dates cannot be parsed are skipped.
	ListOnDate(ctx context.Context, day time.Time) ([]domain.Lesson, error)

	// GetByID returns a single lesson.
	// Returns domain.ErrNotFound if no lesson has that id.
	GetByID(ctx context.Context, id int) (domain.Lesson, error)

	// Create stores a new lesson under the next free id. Any id on l is ignored.
	Create(ctx context.Context, l domain.Lesson) (domain.Lesson, error)

	// Update replaces the lesson with the same id.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, l domain.Lesson) (domain.Lesson, error)

	// Delete removes a lesson by id.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int) error
}

// storeLessonRepo is the storage.Store backed implementation of LessonRepo.
type storeLessonRepo struct {
	c *collection[domain.Lesson]
}

// NewLessonRepo loads the lessons collection from store.
func NewLessonRepo(ctx context.Context, store storage.Store) (LessonRepo, error) {
	c, err := loadCollection(ctx, store, storage.CollectionLessons,
		func(l domain.Lesson) int { return l.ID },
		cloneLesson,
	)
	if err != nil {
		return nil, fmt.Errorf("repo.NewLessonRepo: %w", err)
	}
	return &storeLessonRepo{c: c}, nil
}

// cloneLesson copies the Username pointer target so callers cannot reach
// into the stored lesson.
func cloneLesson(l domain.Lesson) domain.Lesson {
	if l.Username != nil {
		u := *l.Username
		l.Username = &u
	}
	return l
}

func (r *storeLessonRepo) List(_ context.Context) ([]domain.Lesson, error) {
	return r.c.list(domain.Lesson.IsOpen), nil
}

func (r *storeLessonRepo) Search(_ context.Context, term string) ([]domain.Lesson, error) {
	term = strings.ToLower(term)
	return r.c.list(func(l domain.Lesson) bool {
		return l.IsOpen() && strings.Contains(strings.ToLower(l.Title), term)
	}), nil
}

func (r *storeLessonRepo) ListByUser(_ context.Context, username string) ([]domain.Lesson, error) {
	return r.c.list(func(l domain.Lesson) bool {
		return l.Username != nil && strings.EqualFold(*l.Username, username)
	}), nil
}

func (r *storeLessonRepo) ListOnDate(_ context.Context, day time.Time) ([]domain.Lesson, error) {
	return r.c.list(func(l domain.Lesson) bool {
		ok, err := l.OccursOn(day)
		return err == nil && ok
	}), nil
}

func (r *storeLessonRepo) GetByID(_ context.Context, id int) (domain.Lesson, error) {
	l, err := r.c.get(id)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("repo.LessonRepo.GetByID: %w", err)
	}
	return l, nil
}

func (r *storeLessonRepo) Create(ctx context.Context, l domain.Lesson) (domain.Lesson, error) {
	created, err := r.c.create(ctx, nil, func(id int) domain.Lesson {
		l.ID = id
		return l
	})
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("repo.LessonRepo.Create: %w", err)
	}
	return created, nil
}

func (r *storeLessonRepo) Update(ctx context.Context, l domain.Lesson) (domain.Lesson, error) {
	updated, err := r.c.update(ctx, l, nil)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("repo.LessonRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *storeLessonRepo) Delete(ctx context.Context, id int) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.LessonRepo.Delete: %w", err)
	}
	return nil
}
