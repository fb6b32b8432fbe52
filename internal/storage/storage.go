// Package storage persists repository collections.
// Each repository owns one named collection and persists it as a single JSON
// document (an array of entities). Drivers only move bytes; encoding and
// locking belong to the repo package.
package storage

import (
	"context"
	"fmt"
)

// Store loads and saves whole collection documents by name.
type Store interface {
	// Load returns the raw document for the named collection.
	// A collection that has never been saved yields nil data and no error.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Save replaces the named collection's document with data. When Save
	// returns nil the document is durably visible to the next Load.
	Save(ctx context.Context, collection string, data []byte) error
}

// Driver names accepted by the STORAGE_DRIVER setting.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Collection names used by the repositories.
const (
	CollectionDiscs   = "discs"
	CollectionCarts   = "carts"
	CollectionLessons = "lessons"
	CollectionUsers   = "users"
)

// validateName rejects collection names that could escape a key namespace or
// data directory.
func validateName(collection string) error {
	if collection == "" {
		return fmt.Errorf("storage: empty collection name")
	}
	for _, r := range collection {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '-') {
			return fmt.Errorf("storage: invalid collection name %q", collection)
		}
	}
	return nil
}
