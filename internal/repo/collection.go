// Package repo contains the persistence logic for the storefront API.
// Each resource has its own file with an interface and an implementation
// backed by a locked in-memory collection that is written through to a
// storage.Store on every mutation. No business logic lives here.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/pkordes/discgolf-api/internal/domain"
	"github.com/pkordes/discgolf-api/internal/storage"
)

// collection is an id-keyed set of entities mirrored to one storage document.
//
// mu guards items and nextID. Every read and every
// read-modify-write-persist sequence holds it for its full duration, so the
// document is saved before a mutation becomes visible to the next caller.
// A failed save is reported but the in-memory change is kept.
type collection[T any] struct {
	name  string
	store storage.Store
	idOf  func(T) int
	clone func(T) T

	mu     sync.Mutex
	items  map[int]T
	nextID int
}

// loadCollection reads the named document from store and indexes it by id.
// The next id handed out is one past the largest loaded id.
func loadCollection[T any](ctx context.Context, store storage.Store, name string, idOf func(T) int, clone func(T) T) (*collection[T], error) {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	c := &collection[T]{
		name:   name,
		store:  store,
		idOf:   idOf,
		clone:  clone,
		items:  make(map[int]T),
		nextID: 1,
	}

	data, err := store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if len(data) == 0 {
		return c, nil
	}

	var loaded []T
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	for _, v := range loaded {
		id := idOf(v)
		c.items[id] = v
		if id >= c.nextID {
			c.nextID = id + 1
		}
	}
	return c, nil
}

// len returns the number of stored entities.
func (c *collection[T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// next returns the id the next create will assign.
func (c *collection[T]) next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextID
}

// sortedLocked returns the entities ordered by id. Caller holds mu.
func (c *collection[T]) sortedLocked() []T {
	out := make([]T, 0, len(c.items))
	for _, id := range slices.Sorted(maps.Keys(c.items)) {
		out = append(out, c.items[id])
	}
	return out
}

// persistLocked serializes the whole collection and saves it. Caller holds mu.
func (c *collection[T]) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(c.sortedLocked())
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

// list returns copies of the entities accepted by keep (all when keep is
// nil), ordered by id. The result is never nil.
func (c *collection[T]) list(keep func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, len(c.items))
	for _, v := range c.sortedLocked() {
		if keep == nil || keep(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

// get returns a copy of the entity with the given id.
func (c *collection[T]) get(id int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return c.clone(v), nil
}

// find returns a copy of the lowest-id entity accepted by match.
func (c *collection[T]) find(match func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, v, ok := c.findLocked(match)
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return c.clone(v), nil
}

func (c *collection[T]) findLocked(match func(T) bool) (int, T, bool) {
	for _, v := range c.sortedLocked() {
		if match(v) {
			return c.idOf(v), v, true
		}
	}
	var zero T
	return 0, zero, false
}

// create assigns the next id, stores the entity built for it and persists.
// If conflicts is non-nil and accepts any existing entity, nothing is stored
// and domain.ErrConflict is returned.
func (c *collection[T]) create(ctx context.Context, conflicts func(T) bool, build func(id int) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if conflicts != nil {
		if _, _, dup := c.findLocked(conflicts); dup {
			return zero, domain.ErrConflict
		}
	}

	v := c.clone(build(c.nextID))
	c.nextID++
	c.items[c.idOf(v)] = v
	if err := c.persistLocked(ctx); err != nil {
		return zero, err
	}
	return c.clone(v), nil
}

// update replaces the stored entity with the same id and persists.
// If conflicts is non-nil and accepts any other entity, nothing changes and
// domain.ErrConflict is returned.
func (c *collection[T]) update(ctx context.Context, v T, conflicts func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	id := c.idOf(v)
	if _, ok := c.items[id]; !ok {
		return zero, domain.ErrNotFound
	}
	if conflicts != nil {
		for otherID, other := range c.items {
			if otherID != id && conflicts(other) {
				return zero, domain.ErrConflict
			}
		}
	}
	c.items[id] = c.clone(v)
	if err := c.persistLocked(ctx); err != nil {
		return zero, err
	}
	return c.clone(v), nil
}

// delete removes the entity with the given id and persists.
func (c *collection[T]) delete(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.items, id)
	return c.persistLocked(ctx)
}

// deleteWhere removes the lowest-id entity accepted by match and persists.
func (c *collection[T]) deleteWhere(ctx context.Context, match func(T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, _, ok := c.findLocked(match)
	if !ok {
		return domain.ErrNotFound
	}
	delete(c.items, id)
	return c.persistLocked(ctx)
}

// modify applies fn to a copy of the lowest-id entity accepted by match.
// If fn returns an error nothing changes. Otherwise the modified entity
// replaces the stored one and, when persist is set, the collection is saved.
func (c *collection[T]) modify(ctx context.Context, match func(T) bool, persist bool, fn func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	id, v, ok := c.findLocked(match)
	if !ok {
		return zero, domain.ErrNotFound
	}

	v = c.clone(v)
	if err := fn(&v); err != nil {
		return zero, err
	}
	c.items[id] = v
	if persist {
		if err := c.persistLocked(ctx); err != nil {
			return zero, err
		}
	}
	return c.clone(v), nil
}
