package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/repo"
)

// CartService implements cart business logic. Pricing, checking and
// purchasing read the disc inventory, so it holds both repos.
//
// Purchases withdraw stock from inside CartRepo.Modify, so the cart lock is
// always taken before the disc lock and purchases of one cart run one at a
// time. A purchase that fails half way is not undone.
type CartService struct {
	carts repo.CartRepo
	discs repo.DiscRepo
}

// NewCartService constructs a CartService backed by the provided repos.
func NewCartService(carts repo.CartRepo, discs repo.DiscRepo) *CartService {
	return &CartService{carts: carts, discs: discs}
}

// List returns every cart.
func (s *CartService) List(ctx context.Context) ([]domain.Cart, error) {
	carts, err := s.carts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CartService.List: %w", err)
	}
	return carts, nil
}

// ListByUsername returns the carts owned by username.
func (s *CartService) ListByUsername(ctx context.Context, username string) ([]domain.Cart, error) {
	carts, err := s.carts.ListByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service.CartService.ListByUsername: %w", err)
	}
	return carts, nil
}

// GetByID returns a single cart.
func (s *CartService) GetByID(ctx context.Context, id int) (domain.Cart, error) {
	cart, err := s.carts.GetByID(ctx, id)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.GetByID: %w", err)
	}
	return cart, nil
}

// Create opens a cart for cart.Username. A blank username is a validation
// error; an existing cart for the same name (any case) is a conflict.
func (s *CartService) Create(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	cart.Username = strings.TrimSpace(cart.Username)
	if cart.Username == "" {
		return domain.Cart{}, fmt.Errorf("service.CartService.Create: %w: username is required", domain.ErrValidation)
	}
	created, err := s.carts.Create(ctx, cart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.Create: %w", err)
	}
	return created, nil
}

// Update replaces an existing cart. The username is trimmed and must not be
// empty; moving the cart onto another cart's owner (any case) is domain.ErrConflict.
func (s *CartService) Update(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	cart.Username = strings.TrimSpace(cart.Username)
	if cart.Username == "" {
		return domain.Cart{}, fmt.Errorf("service.CartService.Update: %w: username is required", domain.ErrValidation)
	}
	updated, err := s.carts.Update(ctx, cart)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a cart by id.
func (s *CartService) Delete(ctx context.Context, id int) error {
	if err := s.carts.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.CartService.Delete: %w", err)
	}
	return nil
}

// Contents returns the discs in the user's cart, each carrying the cart
// quantity. Discs no longer in inventory are left out.
func (s *CartService) Contents(ctx context.Context, username string) ([]domain.Disc, error) {
	cart, err := s.carts.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service.CartService.Contents: %w", err)
	}

	out := make([]domain.Disc, 0, cart.Len())
	err = s.eachInStock(ctx, cart, func(d domain.Disc, wanted int) {
		out = append(out, d.WithQuantity(wanted))
	})
	if err != nil {
		return nil, fmt.Errorf("service.CartService.Contents: %w", err)
	}
	return out, nil
}

// Cost returns the price of the cart: price times cart quantity, summed over
// the discs still in inventory.
func (s *CartService) Cost(ctx context.Context, username string) (float64, error) {
	cart, err := s.carts.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("service.CartService.Cost: %w", err)
	}

	var total float64
	err = s.eachInStock(ctx, cart, func(d domain.Disc, wanted int) {
		total += d.Price * float64(wanted)
	})
	if err != nil {
		return 0, fmt.Errorf("service.CartService.Cost: %w", err)
	}
	return total, nil
}

// Count returns the total number of units in the user's cart.
func (s *CartService) Count(ctx context.Context, username string) (int, error) {
	cart, err := s.carts.GetByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("service.CartService.Count: %w", err)
	}
	return cart.Count(), nil
}

// Check lists the cart lines that inventory cannot fully cover. Each entry is
// the disc carrying the quantity actually available. Discs gone from
// inventory are skipped. Returns domain.ErrEmptyCart for a cart with no lines.
func (s *CartService) Check(ctx context.Context, username string) ([]domain.Disc, error) {
	cart, err := s.nonEmptyCart(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("service.CartService.Check: %w", err)
	}

	conflicts := []domain.Disc{}
	err = s.eachInStock(ctx, cart, func(d domain.Disc, wanted int) {
		if d.Quantity < wanted {
			conflicts = append(conflicts, d)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("service.CartService.Check: %w", err)
	}
	return conflicts, nil
}

// CheckOne checks a single cart line. When inventory falls short it returns
// the disc carrying the available quantity and ok=false; when the line can be
// filled it returns ok=true and a zero Disc.
//
// Returns domain.ErrConflict if the disc is not in inventory and
// domain.ErrNotFound if the cart, or the disc within it, does not exist.
func (s *CartService) CheckOne(ctx context.Context, username string, discID int) (domain.Disc, bool, error) {
	cart, err := s.carts.GetByUsername(ctx, username)
	if err != nil {
		return domain.Disc{}, false, fmt.Errorf("service.CartService.CheckOne: %w", err)
	}
	d, err := s.stocked(ctx, discID)
	if err != nil {
		return domain.Disc{}, false, fmt.Errorf("service.CartService.CheckOne: %w", err)
	}
	if !cart.Has(discID) {
		return domain.Disc{}, false, fmt.Errorf("service.CartService.CheckOne: disc %d not in cart: %w", discID, domain.ErrNotFound)
	}

	if d.Quantity < cart.Quantity(discID) {
		return d, false, nil
	}
	return domain.Disc{}, true, nil
}

// Purchase buys every line of the user's cart, in ascending disc id order.
// Each line takes min(cart quantity, stock) from inventory and is removed
// from the cart. Lines whose disc is gone from inventory stay in the cart.
// Returns the purchase lines, each disc carrying the quantity bought.
//
// Returns domain.ErrEmptyCart for a cart with no lines and domain.ErrConflict
// when no line could be bought.
func (s *CartService) Purchase(ctx context.Context, username string) ([]domain.Disc, error) {
	var lines []domain.Disc
	_, err := s.carts.Modify(ctx, username, func(c *domain.Cart) error {
		if c.Len() == 0 {
			return domain.ErrEmptyCart
		}
		for _, id := range c.DiscIDs() {
			d, err := s.discs.Withdraw(ctx, id, c.Quantity(id))
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			lines = append(lines, d)
			c.RemoveDisc(id)
		}
		if len(lines) == 0 {
			return fmt.Errorf("nothing purchasable: %w", domain.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.CartService.Purchase: %w", err)
	}
	return lines, nil
}

// PurchaseOne buys a single cart line and removes it from the cart. The
// returned disc carries the quantity bought.
//
// Returns domain.ErrConflict if the disc is not in inventory and
// domain.ErrNotFound if the cart, or the disc within it, does not exist.
func (s *CartService) PurchaseOne(ctx context.Context, username string, discID int) (domain.Disc, error) {
	var bought domain.Disc
	_, err := s.carts.Modify(ctx, username, func(c *domain.Cart) error {
		if _, err := s.stocked(ctx, discID); err != nil {
			return err
		}
		if !c.Has(discID) {
			return fmt.Errorf("disc %d not in cart: %w", discID, domain.ErrNotFound)
		}

		d, err := s.discs.Withdraw(ctx, discID, c.Quantity(discID))
		if errors.Is(err, domain.ErrNotFound) {
			// Sold out to another cart since the stock check.
			return fmt.Errorf("disc %d sold out: %w", discID, domain.ErrConflict)
		}
		if err != nil {
			return err
		}
		bought = d
		c.RemoveDisc(discID)
		return nil
	})
	if err != nil {
		return domain.Disc{}, fmt.Errorf("service.CartService.PurchaseOne: %w", err)
	}
	return bought, nil
}

// AddDisc adds one unit of discID to the user's cart.
func (s *CartService) AddDisc(ctx context.Context, username string, discID int) (domain.Cart, error) {
	cart, err := s.carts.Modify(ctx, username, func(c *domain.Cart) error {
		if !c.AddOne(discID) {
			return domain.ErrValidation
		}
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.AddDisc: %w", err)
	}
	return cart, nil
}

// RemoveDisc deletes the line for discID from the user's cart.
// Returns domain.ErrNotFound if the cart has no such line.
func (s *CartService) RemoveDisc(ctx context.Context, username string, discID int) (domain.Cart, error) {
	cart, err := s.carts.Modify(ctx, username, func(c *domain.Cart) error {
		if !c.RemoveDisc(discID) {
			return fmt.Errorf("disc %d not in cart: %w", discID, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.RemoveDisc: %w", err)
	}
	return cart, nil
}

// UpdateDiscQuantity sets, adds or subtracts amount on an existing cart line
// (mode 0, 1 or 2). A result of zero or less removes the line.
// Returns domain.ErrNotFound if the cart has no such line or mode is unknown.
func (s *CartService) UpdateDiscQuantity(ctx context.Context, username string, discID, amount, mode int) (domain.Cart, error) {
	cart, err := s.carts.Modify(ctx, username, func(c *domain.Cart) error {
		if !c.UpdateDiscQuantity(discID, amount, domain.QuantityMode(mode)) {
			return fmt.Errorf("disc %d not in cart or mode %d unknown: %w", discID, mode, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("service.CartService.UpdateDiscQuantity: %w", err)
	}
	return cart, nil
}

// nonEmptyCart returns the user's cart, or domain.ErrEmptyCart if it has no lines.
func (s *CartService) nonEmptyCart(ctx context.Context, username string) (domain.Cart, error) {
	cart, err := s.carts.GetByUsername(ctx, username)
	if err != nil {
		return domain.Cart{}, err
	}
	if cart.Len() == 0 {
		return domain.Cart{}, domain.ErrEmptyCart
	}
	return cart, nil
}

// stocked returns the inventory record for discID.
// A disc missing from inventory is reported as domain.ErrConflict.
func (s *CartService) stocked(ctx context.Context, discID int) (domain.Disc, error) {
	d, err := s.discs.GetByID(ctx, discID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Disc{}, fmt.Errorf("disc %d not in inventory: %w", discID, domain.ErrConflict)
	}
	return d, err
}

// eachInStock calls fn for every cart line whose disc is still in inventory,
// in ascending disc id order, passing the inventory record and the cart quantity.
func (s *CartService) eachInStock(ctx context.Context, cart domain.Cart, fn func(d domain.Disc, wanted int)) error {
	for _, id := range cart.DiscIDs() {
		d, err := s.discs.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		fn(d, cart.Quantity(id))
	}
	return nil
}
