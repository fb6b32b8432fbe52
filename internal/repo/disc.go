package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/storage"
)

// DiscRepo defines the persistence operations for the disc inventory.
type DiscRepo interface {
	// List returns every disc, ordered by id.
	List(ctx context.Context) ([]domain.Disc, error)

	// Search returns the discs whose field selected by mode contains term,
	// ignoring case. SearchAll returns every disc.
	Search(ctx context.Context, term string, mode domain.SearchMode) ([]domain.Disc, error)

	// GetByID returns a single disc.
	// Returns domain.ErrNotFound if no disc has that id.
	GetByID(ctx context.Context, id int) (domain.Disc, error)

	// Create stores a new disc under the next free id. Any id on d is ignored.
	Create(ctx context.Context, d domain.Disc) (domain.Disc, error)

	// Update replaces the disc with the same id.
	// Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, d domain.Disc) (domain.Disc, error)

	// Delete removes a disc by id.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int) error

	// Withdraw takes up to want units of a disc out of inventory in one step.
	// The returned disc carries the number of units actually taken. A
	// withdrawal that empties the line deletes the disc.
	// Returns domain.ErrNotFound if the disc does not exist.
	Withdraw(ctx context.Context, id, want int) (domain.Disc, error)
}

// storeDiscRepo is the storage.Store backed implementation of DiscRepo.
type storeDiscRepo struct {
	c *collection[domain.Disc]
}

// NewDiscRepo loads the discs collection from store.
func NewDiscRepo(ctx context.Context, store storage.Store) (DiscRepo, error) {
	c, err := loadCollection(ctx, store, storage.CollectionDiscs, func(d domain.Disc) int { return d.ID }, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.NewDiscRepo: %w", err)
	}
	return &storeDiscRepo{c: c}, nil
}

func (r *storeDiscRepo) List(_ context.Context) ([]domain.Disc, error) {
	return r.c.list(nil), nil
}

func (r *storeDiscRepo) Search(_ context.Context, term string, mode domain.SearchMode) ([]domain.Disc, error) {
	return r.c.list(func(d domain.Disc) bool { return d.Matches(term, mode) }), nil
}

func (r *storeDiscRepo) GetByID(_ context.Context, id int) (domain.Disc, error) {
	d, err := r.c.get(id)
	if err != nil {
		return domain.Disc{}, fmt.Errorf("repo.DiscRepo.GetByID: %w", err)
	}
	return d, nil
}

func (r *storeDiscRepo) Create(ctx context.Context, d domain.Disc) (domain.Disc, error) {
	created, err := r.c.create(ctx, nil, func(id int) domain.Disc {
		d.ID = id
		return d
	})
	if err != nil {
		return domain.Disc{}, fmt.Errorf("repo.DiscRepo.Create: %w", err)
	}
	return created, nil
}

func (r *storeDiscRepo) Update(ctx context.Context, d domain.Disc) (domain.Disc, error) {
	updated, err := r.c.update(ctx, d, nil)
	if err != nil {
		return domain.Disc{}, fmt.Errorf("repo.DiscRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *storeDiscRepo) Delete(ctx context.Context, id int) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.DiscRepo.Delete: %w", err)
	}
	return nil
}

// Withdraw holds the collection lock across the read, the decrement and the
// save, so two buyers can never take the same unit.
func (r *storeDiscRepo) Withdraw(ctx context.Context, id, want int) (domain.Disc, error) {
	r.c.mu.Lock()
	defer r.c.mu.Unlock()

	d, ok := r.c.items[id]
	if !ok {
		return domain.Disc{}, fmt.Errorf("repo.DiscRepo.Withdraw: %w", domain.ErrNotFound)
	}

	purchased, soldOut := d.Withdraw(want)
	if soldOut {
		delete(r.c.items, id)
	} else {
		r.c.items[id] = d.WithQuantity(d.Quantity - purchased)
	}
	if err := r.c.persistLocked(ctx); err != nil {
		return domain.Disc{}, fmt.Errorf("repo.DiscRepo.Withdraw: %w", err)
	}
	return d.WithQuantity(purchased), nil
}
