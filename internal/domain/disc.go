// Package domain contains the core data types for the disc golf storefront.
// This package has zero external dependencies and is imported by every other
// internal package (storage, repo, service, handler).
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Disc is one inventory line: a disc model in a given color and weight, with
// the number of units on hand.
type Disc struct {
	ID       int     `json:"id"`
	Color    string  `json:"color"`
	Weight   int     `json:"weight"` // grams
	Type     string  `json:"type"`   // e.g. "Putter", "Driver"
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// WithQuantity returns a copy of d carrying quantity instead of the stored
// inventory count. Cart flows use it to report cart, available or purchased
// quantities while keeping the disc's identity and attributes.
func (d Disc) WithQuantity(quantity int) Disc {
	d.Quantity = quantity
	return d
}

// Withdraw computes how many units of d a buyer asking for want receives.
// purchased is min(want, d.Quantity); soldOut reports that the purchase
// consumes the whole inventory line, in which case the disc should be deleted
// rather than decremented.
func (d Disc) Withdraw(want int) (purchased int, soldOut bool) {
	purchased = min(want, d.Quantity)
	return purchased, purchased == d.Quantity
}

// SearchMode selects which disc attribute a search term is matched against.
type SearchMode int

const (
	// SearchAll disables filtering: every disc matches.
	SearchAll SearchMode = iota
	// SearchType matches against Disc.Type.
	SearchType
	// SearchColor matches against Disc.Color.
	SearchColor
	// SearchWeight matches against the decimal string form of Disc.Weight.
	SearchWeight
	// SearchPrice matches against the string form of Disc.Price (see FormatPrice).
	SearchPrice
)

// ParseSearchMode converts the integer mode used on the wire into a SearchMode.
// Returns ErrValidation for values outside 0..4.
func ParseSearchMode(mode int) (SearchMode, error) {
	m := SearchMode(mode)
	if m < SearchAll || m > SearchPrice {
		return SearchAll, fmt.Errorf("%w: unknown search mode %d", ErrValidation, mode)
	}
	return m, nil
}

func (m SearchMode) String() string {
	switch m {
	case SearchAll:
		return "all"
	case SearchType:
		return "type"
	case SearchColor:
		return "color"
	case SearchWeight:
		return "weight"
	case SearchPrice:
		return "price"
	}
	return "SearchMode(" + strconv.Itoa(int(m)) + ")"
}

// Matches reports whether term is a case-insensitive substring of the field
// selected by mode. SearchAll matches everything.
func (d Disc) Matches(term string, mode SearchMode) bool {
	var field string
	switch mode {
	case SearchAll:
		return true
	case SearchType:
		field = d.Type
	case SearchColor:
		field = d.Color
	case SearchWeight:
		field = strconv.Itoa(d.Weight)
	case SearchPrice:
		field = FormatPrice(d.Price)
	default:
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(term))
}

// FormatPrice renders a price the way the storefront has always searched it:
// shortest decimal form, always carrying a fractional part ("10.0", "12.5").
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
