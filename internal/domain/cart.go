package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// QuantityMode selects how UpdateDiscQuantity combines the amount with the
// quantity already in the cart.
type QuantityMode int

const (
	// QuantitySet replaces the stored quantity with the amount.
	QuantitySet QuantityMode = iota
	// QuantityAdd adds the amount to the stored quantity.
	QuantityAdd
	// QuantitySubtract subtracts the amount from the stored quantity.
	QuantitySubtract
)

// Valid reports whether m is one of the three known modes.
func (m QuantityMode) Valid() bool {
	return m >= QuantitySet && m <= QuantitySubtract
}

// Cart is a user's shopping cart: a mapping of disc ID to requested quantity.
//
// Every stored quantity is strictly positive; mutators that would leave a
// line at zero or below remove it instead. The contents map is never exposed
// directly. Cart values share their map when copied, so code that keeps a
// Cart beyond a single call must Clone it.
type Cart struct {
	ID       int
	Username string
	contents map[int]int
}

// NewCart builds a cart from the given lines. The map is copied and
// non-positive quantities are dropped.
func NewCart(id int, username string, contents map[int]int) Cart {
	c := Cart{ID: id, Username: username, contents: make(map[int]int, len(contents))}
	for discID, qty := range contents {
		if qty > 0 {
			c.contents[discID] = qty
		}
	}
	return c
}

// Clone returns a deep copy of c.
func (c Cart) Clone() Cart {
	return NewCart(c.ID, c.Username, c.contents)
}

// Contents returns a copy of the cart lines. Callers may modify the result
// freely; it does not alias the cart's internal state.
func (c Cart) Contents() map[int]int {
	out := make(map[int]int, len(c.contents))
	maps.Copy(out, c.contents)
	return out
}

// DiscIDs returns the IDs of the discs in the cart in ascending order.
func (c Cart) DiscIDs() []int {
	return slices.Sorted(maps.Keys(c.contents))
}

// Len returns the number of distinct discs in the cart.
func (c Cart) Len() int {
	return len(c.contents)
}

// Quantity returns the quantity of discID in the cart, or 0 if absent.
func (c Cart) Quantity(discID int) int {
	return c.contents[discID]
}

// Has reports whether discID has a line in the cart.
func (c Cart) Has(discID int) bool {
	_, ok := c.contents[discID]
	return ok
}

// Count returns the total number of units across all lines.
func (c Cart) Count() int {
	total := 0
	for _, qty := range c.contents {
		total += qty
	}
	return total
}

// AddDisc adds quantity units of discID, creating the line if needed.
// Returns false, leaving the cart untouched, when quantity is not positive.
func (c *Cart) AddDisc(discID, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if c.contents == nil {
		c.contents = make(map[int]int)
	}
	c.contents[discID] += quantity
	return true
}

// AddOne adds a single unit of discID.
func (c *Cart) AddOne(discID int) bool {
	return c.AddDisc(discID, 1)
}

// RemoveDisc deletes the line for discID. Returns whether it was present.
func (c *Cart) RemoveDisc(discID int) bool {
	if _, ok := c.contents[discID]; !ok {
		return false
	}
	delete(c.contents, discID)
	return true
}

// UpdateDiscQuantity sets, adds or subtracts amount on an existing line.
// Returns false when discID is not in the cart or mode is unknown.
// A resulting quantity of zero or less removes the line.
func (c *Cart) UpdateDiscQuantity(discID, amount int, mode QuantityMode) bool {
	current, ok := c.contents[discID]
	if !ok || !mode.Valid() {
		return false
	}

	next := amount
	switch mode {
	case QuantityAdd:
		next = current + amount
	case QuantitySubtract:
		next = current - amount
	}

	if next > 0 {
		c.contents[discID] = next
	} else {
		delete(c.contents, discID)
	}
	return true
}

// cartJSON is the wire and storage shape of a Cart.
// encoding/json writes the int keys of Contents as JSON object keys ("1": 2).
type cartJSON struct {
	ID       int         `json:"id"`
	Username string      `json:"username"`
	Contents map[int]int `json:"contents"`
}

// MarshalJSON encodes the cart as {"id", "username", "contents"}.
func (c Cart) MarshalJSON() ([]byte, error) {
	return json.Marshal(cartJSON{ID: c.ID, Username: c.Username, Contents: c.Contents()})
}

// UnmarshalJSON decodes a cart, dropping any non-positive quantities.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var raw cartJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = NewCart(raw.ID, raw.Username, raw.Contents)
	return nil
}
