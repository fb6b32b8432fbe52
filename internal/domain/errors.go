package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// disc, cart, lesson or user does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmptyCart is returned by cart flows that need at least one line to act on.
// It wraps ErrNotFound, so handlers map it to HTTP 404 as well.
var ErrEmptyCart = fmt.Errorf("cart is empty: %w", ErrNotFound)

// ErrConflict is returned when a uniqueness rule is violated on create
// (duplicate cart owner, duplicate username) or when a cart line cannot be
// purchased because the disc is gone from inventory.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned by login on a password mismatch and by logout
// when the user is not logged in.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. unknown search mode, lesson end date before start date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
