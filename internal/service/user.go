package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/repo"
)

// UserService implements business logic for accounts and login state.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(r repo.UserRepo) *UserService {
	return &UserService{repo: r}
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	return users, nil
}

// GetByID returns a single user.
func (s *UserService) GetByID(ctx context.Context, id int) (domain.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return u, nil
}

// GetByUsername returns the user with exactly this username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByUsername: %w", err)
	}
	return u, nil
}

// Create validates and persists a new account. The username is trimmed and
// must not be empty; a taken username (any case) is domain.ErrConflict.
func (s *UserService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w: username is required", domain.ErrValidation)
	}
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Create: %w", err)
	}
	return created, nil
}

// Update replaces an existing account. The username follows the same rules
// as Create; renaming onto another user's name (any case) is domain.ErrConflict.
func (s *UserService) Update(ctx context.Context, u domain.User) (domain.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w: username is required", domain.ErrValidation)
	}
	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a user by id.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.UserService.Delete: %w", err)
	}
	return nil
}

// DeleteByUsername removes the user with exactly this username.
func (s *UserService) DeleteByUsername(ctx context.Context, username string) error {
	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return fmt.Errorf("service.UserService.DeleteByUsername: %w", err)
	}
	return nil
}

// Login marks the user logged in when password matches.
// Returns domain.ErrUnauthorized on a mismatch.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.repo.SetSession(ctx, username, func(u *domain.User) error {
		if !u.Login(password) {
			return domain.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Login: %w", err)
	}
	return u, nil
}

// Logout clears the user's login.
// Returns domain.ErrUnauthorized if the user was not logged in.
func (s *UserService) Logout(ctx context.Context, username string) (domain.User, error) {
	u, err := s.repo.SetSession(ctx, username, func(u *domain.User) error {
		if !u.Logout() {
			return domain.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Logout: %w", err)
	}
	return u, nil
}
