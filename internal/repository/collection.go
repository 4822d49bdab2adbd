// Package repository holds the in-memory collections that back every slot.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"Share_Space/internal/model"
	"Share_Space/internal/repository/slot"
)

// Options control how a collection is first loaded.
type Options[T any] struct {
	// Seed provides the contents when the slot has never been written.
	Seed func() []T
	// Normalize runs on every loaded item, e.g. to replace nil slices.
	Normalize func(*T)
}

// Collection is a whole-slot repository. Every mutation writes the complete
// new collection to its slot before it replaces the in-memory copy, so a
// failed write leaves readers on the previous state.
type Collection[T model.Entity] struct {
	mu    sync.RWMutex
	store slot.Store
	key   string
	items []T
}

// Load reads the slot into memory. An absent slot is seeded and written back.
func Load[T model.Entity](ctx context.Context, store slot.Store, key string, opts Options[T]) (*Collection[T], error) {
	c := &Collection[T]{store: store, key: key}

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		var seed []T
		if opts.Seed != nil {
			seed = opts.Seed()
		}
		if err = c.commit(ctx, seed); err != nil {
			return nil, err
		}
		return c, nil
	}

	var items []T
	if err = json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if opts.Normalize != nil {
		for i := range items {
			opts.Normalize(&items[i])
		}
	}
	c.items = items
	return c, nil
}

func (c *Collection[T]) Key() string { return c.key }

// List returns the collection in stored order (most recent first for content).
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, bool) {
	return c.Find(func(it T) bool { return it.EntityID() == id })
}

func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Add puts item at the front.
func (c *Collection[T]) Add(ctx context.Context, item T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		next := make([]T, 0, len(items)+1)
		next = append(next, item)
		return append(next, items...), nil
	})
}

// Append puts item at the back.
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// Remove drops the item with id. A missing id is a no-op and reports false.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if it.EntityID() != id {
			next = append(next, it)
		}
	}
	if len(next) == len(c.items) {
		return false, nil
	}
	return true, c.commit(ctx, next)
}

// UpdateOne applies patch to a copy of the item with id and stores it in
// place. A missing id is a no-op and reports false.
func (c *Collection[T]) UpdateOne(ctx context.Context, id string, patch func(*T)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for i, it := range c.items {
		if it.EntityID() != id {
			continue
		}
		next := make([]T, len(c.items))
		copy(next, c.items)
		patch(&next[i])
		if err := c.commit(ctx, next); err != nil {
			return zero, true, err
		}
		return next[i], true, nil
	}
	return zero, false, nil
}

// UpdateWhere patches every item matching pred and returns how many changed.
func (c *Collection[T]) UpdateWhere(ctx context.Context, pred func(T) bool, patch func(*T)) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.items))
	copy(next, c.items)
	n := 0
	for i := range next {
		if pred(next[i]) {
			patch(&next[i])
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, c.commit(ctx, next)
}

// Mutate replaces the whole collection with fn's result. fn receives a copy
// it may modify freely; returning an error aborts without writing.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := make([]T, len(c.items))
	copy(cur, c.items)
	next, err := fn(cur)
	if err != nil {
		return err
	}
	return c.commit(ctx, next)
}

// commit must be called with mu held (or before the collection is shared).
func (c *Collection[T]) commit(ctx context.Context, next []T) error {
	if next == nil {
		next = []T{}
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err = c.store.Set(ctx, c.key, string(raw)); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	c.items = next
	return nil
}
