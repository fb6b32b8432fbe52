package service

import (
	"context"
	"fmt"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/repo"
)

// LessonService implements business logic for lessons: date validation on
// write and the date-occurrence query.
type LessonService struct {
	repo repo.LessonRepo
}

// NewLessonService constructs a LessonService backed by the provided LessonRepo.
func NewLessonService(r repo.LessonRepo) *LessonService {
	return &LessonService{repo: r}
}

// List returns the open lessons.
func (s *LessonService) List(ctx context.Context) ([]domain.Lesson, error) {
	lessons, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LessonService.List: %w", err)
	}
	return lessons, nil
}

// Search returns the open lessons whose title contains title.
func (s *LessonService) Search(ctx context.Context, title string) ([]domain.Lesson, error) {
	lessons, err := s.repo.Search(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("service.LessonService.Search: %w", err)
	}
	return lessons, nil
}

// ListByUser returns the lessons booked by username.
func (s *LessonService) ListByUser(ctx context.Context, username string) ([]domain.Lesson, error) {
	lessons, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service.LessonService.ListByUser: %w", err)
	}
	return lessons, nil
}

// ListOnDate returns every lesson, booked or open, that meets on date.
// date is parsed with domain.ParseDate; a bad date is domain.ErrValidation.
func (s *LessonService) ListOnDate(ctx context.Context, date string) ([]domain.Lesson, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("service.LessonService.ListOnDate: %w", err)
	}
	lessons, err := s.repo.ListOnDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("service.LessonService.ListOnDate: %w", err)
	}
	return lessons, nil
}

// GetByID returns a single lesson.
func (s *LessonService) GetByID(ctx context.Context, id int) (domain.Lesson, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("service.LessonService.GetByID: %w", err)
	}
	return l, nil
}

// Create validates and persists a new lesson.
func (s *LessonService) Create(ctx context.Context, l domain.Lesson) (domain.Lesson, error) {
	if err := validateLesson(l); err != nil {
		return domain.Lesson{}, fmt.Errorf("service.LessonService.Create: %w", err)
	}
	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("service.LessonService.Create: %w", err)
	}
	return created, nil
}

// Update validates and replaces an existing lesson.
func (s *LessonService) Update(ctx context.Context, l domain.Lesson) (domain.Lesson, error) {
	if err := validateLesson(l); err != nil {
		return domain.Lesson{}, fmt.Errorf("service.LessonService.Update: %w", err)
	}
	updated, err := s.repo.Update(ctx, l)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("service.LessonService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a lesson by id.
func (s *LessonService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.LessonService.Delete: %w", err)
	}
	return nil
}

// validateLesson requires both dates to parse and start to be on or before end.
func validateLesson(l domain.Lesson) error {
	start, end, err := l.DateRange()
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("%w: startDate %s is after endDate %s", domain.ErrValidation, l.StartDate, l.EndDate)
	}
	return nil
}
