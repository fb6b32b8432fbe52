package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/storage"
)

// UserRepo defines the persistence operations for user accounts.
// Login state lives on the stored domain.User values for the life of the
// process but is never written to the store.
type UserRepo interface {
	// List returns every user, ordered by id.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID returns a single user.
	// Returns domain.ErrNotFound if no user has that id.
	GetByID(ctx context.Context, id int) (domain.User, error)

	// GetByUsername returns the user whose username equals username exactly.
	// Returns domain.ErrNotFound if there is none.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	// Create stores a new user under the next free id. Returns
	// domain.ErrConflict if the username is taken, compared without case.
	Create(ctx context.Context, u domain.User) (domain.User, error)

	// Update replaces the user with the same id.
	// Returns domain.ErrNotFound if it does not exist and domain.ErrConflict
	// if another user holds the username, compared without case.
	Update(ctx context.Context, u domain.User) (domain.User, error)

	// Delete removes a user by id.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int) error

	// DeleteByUsername removes the user whose username equals username exactly.
	// Returns domain.ErrNotFound if there is none.
	DeleteByUsername(ctx context.Context, username string) error

	// SetSession applies fn to the stored user with the given username under
	// the repo lock. Only the in-memory login state may change, so nothing is
	// saved. If fn returns an error the user is left unchanged.
	SetSession(ctx context.Context, username string, fn func(*domain.User) error) (domain.User, error)
}

// storeUserRepo is the storage.Store backed implementation of UserRepo.
type storeUserRepo struct {
	c *collection[domain.User]
}

// NewUserRepo loads the users collection from store.
func NewUserRepo(ctx context.Context, store storage.Store) (UserRepo, error) {
	c, err := loadCollection(ctx, store, storage.CollectionUsers, func(u domain.User) int { return u.ID }, nil)
	if err != nil {
		return nil, fmt.Errorf("repo.NewUserRepo: %w", err)
	}
	return &storeUserRepo{c: c}, nil
}

func named(username string) func(domain.User) bool {
	return func(u domain.User) bool { return u.Username == username }
}

func (r *storeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return r.c.list(nil), nil
}

func (r *storeUserRepo) GetByID(_ context.Context, id int) (domain.User, error) {
	u, err := r.c.get(id)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return u, nil
}

func (r *storeUserRepo) GetByUsername(_ context.Context, username string) (domain.User, error) {
	u, err := r.c.find(named(username))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return u, nil
}

// namedAnyCase matches users called username compared without case.
func namedAnyCase(username string) func(domain.User) bool {
	return func(u domain.User) bool { return strings.EqualFold(u.Username, username) }
}

func (r *storeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	created, err := r.c.create(ctx, namedAnyCase(u.Username), func(id int) domain.User {
		u.ID = id
		return u
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return created, nil
}

func (r *storeUserRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	updated, err := r.c.update(ctx, u, namedAnyCase(u.Username))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return updated, nil
}

func (r *storeUserRepo) Delete(ctx context.Context, id int) error {
	if err := r.c.delete(ctx, id); err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	return nil
}

func (r *storeUserRepo) DeleteByUsername(ctx context.Context, username string) error {
	if err := r.c.deleteWhere(ctx, named(username)); err != nil {
		return fmt.Errorf("repo.UserRepo.DeleteByUsername: %w", err)
	}
	return nil
}

func (r *storeUserRepo) SetSession(ctx context.Context, username string, fn func(*domain.User) error) (domain.User, error) {
	u, err := r.c.modify(ctx, named(username), false, fn)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.SetSession: %w", err)
	}
	return u, nil
}
