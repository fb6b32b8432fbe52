// Package service contains the business logic for the storefront API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No storage code lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/repo"
)

// DiscService implements business logic for the disc inventory.
type DiscService struct {
	repo repo.DiscRepo
}

// NewDiscService constructs a DiscService backed by the provided DiscRepo.
func NewDiscService(r repo.DiscRepo) *DiscService {
	return &DiscService{repo: r}
}

// List returns every disc.
func (s *DiscService) List(ctx context.Context) ([]domain.Disc, error) {
	discs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DiscService.List: %w", err)
	}
	return discs, nil
}

// ListByType returns the discs whose type contains discType, ignoring case.
func (s *DiscService) ListByType(ctx context.Context, discType string) ([]domain.Disc, error) {
	discs, err := s.repo.Search(ctx, discType, domain.SearchType)
	if err != nil {
		return nil, fmt.Errorf("service.DiscService.ListByType: %w", err)
	}
	return discs, nil
}

// Search filters discs by term using the wire-level mode number (0..4).
// Returns domain.ErrValidation for an unknown mode.
func (s *DiscService) Search(ctx context.Context, term string, mode int) ([]domain.Disc, error) {
	m, err := domain.ParseSearchMode(mode)
	if err != nil {
		return nil, fmt.Errorf("service.DiscService.Search: %w", err)
	}
	discs, err := s.repo.Search(ctx, term, m)
	if err != nil {
		return nil, fmt.Errorf("service.DiscService.Search: %w", err)
	}
	return discs, nil
}

// GetByID returns a single disc.
func (s *DiscService) GetByID(ctx context.Context, id int) (domain.Disc, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Disc{}, fmt.Errorf("service.DiscService.GetByID: %w", err)
	}
	return d, nil
}

// Create adds a disc to inventory under a new id.
func (s *DiscService) Create(ctx context.Context, d domain.Disc) (domain.Disc, error) {
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return domain.Disc{}, fmt.Errorf("service.DiscService.Create: %w", err)
	}
	return created, nil
}

// Update replaces an existing disc.
func (s *DiscService) Update(ctx context.Context, d domain.Disc) (domain.Disc, error) {
	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return domain.Disc{}, fmt.Errorf("service.DiscService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a disc by id.
func (s *DiscService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DiscService.Delete: %w", err)
	}
	return nil
}
