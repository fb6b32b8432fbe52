package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/storage"
)

// CartRepo defines the persistence operations for shopping carts.
// Every cart returned is a deep copy; modifying it does not touch the store.
type CartRepo interface {
	// List returns every cart, ordered by id.
	List(ctx context.Context) ([]domain.Cart, error)

	// ListByUsername returns the carts whose username equals username exactly.
	ListByUsername(ctx context.Context, username string) ([]domain.Cart, error)

	// GetByID returns a single cart.
	// Returns domain.ErrNotFound if no cart has that id.
	GetByID(ctx context.Context, id int) (domain.Cart, error)

	// GetByUsername returns the lowest-id cart whose username equals username
	// exactly. Returns domain.ErrNotFound if there is none.
	GetByUsername(ctx context.Context, username string) (domain.Cart, error)

	// Create stores a new cart under the next free id with the username and
	// contents of cart. Returns domain.ErrConflict if a cart already exists for
	// the username, compared without case.
	Create(ctx context.Context, cart domain.Cart) (domain.Cart, error)

	// Update replaces the cart with the same id.
	// Returns domain.ErrNotFound if it does not exist and domain.ErrConflict
	// if another cart belongs to the same username, compared without case.
	Update(ctx context.Context, cart domain.Cart) (domain.Cart, error)

	// Delete removes a cart by id.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int) error

	// Modify applies fn to the cart of username and saves the result, all
	// under one lock. If fn returns an error the cart is left unchanged and
	// that error is returned. Returns domain.ErrNotFound if the user has no cart.
	Modify(ctx context.Context, username string, fn func(*domain.Cart) error) (domain.Cart, error)
}

// storeCartRepo is the storage.Store backed implementation of CartRepo.
type storeCartRepo struct {
	c *collection[domain.Cart]
}

// NewCartRepo loads the carts collection from store.
func NewCartRepo(ctx context.Context, store storage.Store) (CartRepo, error) {
	c, err := loadCollection(ctx, store, storage.CollectionCarts,
		func(c domain.Cart) int { return c.ID },
		domain.Cart.Clone,
	)
	if err != nil {
		return nil, fmt.Errorf("repo.NewCartRepo: %w", err)
	}
	return &storeCartRepo{c: c}, nil
}

func ownedBy(username string) func(domain.Cart) bool {
	return func(c domain.Cart) bool { return c.Username == username }
}

func (r *storeCartRepo) List(_ context.Context) ([]domain.Cart, error) {
	return r.c.list(nil), nil
}

func (r *storeCartRepo) ListByUsername(_ context.Context, username string) ([]domain.Cart, error) {
	return r.c.list(ownedBy(username)), nil
}

func (r *storeCartRepo) GetByID(_ context.Context, id int) (domain.Cart, error) {
	cart, err := r.c.get(id)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.CartRepo.GetByID: %w", err)
	}
	return cart, nil
}

func (r *storeCartRepo) GetByUsername(_ context.Context, username string) (domain.Cart, error) {
	cart, err := r.c.find(ownedBy(username))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.CartRepo.GetByUsername: %w", err)
	}
	return cart, nil
}

// ownedByAnyCase matches carts of username compared without case.
func ownedByAnyCase(username string) func(domain.Cart) bool {
	return func(c domain.Cart) bool { return strings.EqualFold(c.Username, username) }
}

func (r *storeCartRepo) Create(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	created, err := r.c.create(ctx, ownedByAnyCase(cart.Username), func(id int) domain.Cart {
		return domain.NewCart(id, cart.Username, cart.Contents())
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.CartRepo.Create: %w", err)
	}
	return created, nil
}

func (r *storeCartRepo) Update(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	updated, err := r.c.update(ctx, cart, ownedByAnyCase(cart.Username))
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.CartRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *storeCartRepo) Delete(ctx context.Context, id int) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.CartRepo.Delete: %w", err)
	}
	return nil
}

func (r *storeCartRepo) Modify(ctx context.Context, username string, fn func(*domain.Cart) error) (domain.Cart, error) {
	cart, err := r.c.modify(ctx, ownedBy(username), true, fn)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("repo.CartRepo.Modify: %w", err)
	}
	return cart, nil
}
