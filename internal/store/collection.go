package store

import (
	"context"
	"errors"
	"fmt"
)

// Record is anything stored in a collection under a unique key.
type Record interface {
	Key() string
}

// Collection is a typed view over one named JSON array.
type Collection[T Record] struct {
	db       *DB
	name     string
	optional bool
}

type CollectionOption func(*collectionOptions)

type collectionOptions struct {
	optional bool
}

// Optional makes a missing backing resource read as an empty collection
// instead of failing with ErrNotFound.
func Optional() CollectionOption {
	return func(o *collectionOptions) { o.optional = true }
}

func NewCollection[T Record](db *DB, name string, opts ...CollectionOption) *Collection[T] {
	var o collectionOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{db: db, name: name, optional: o.optional}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	var items []T
	if err := c.db.read(ctx, c.name, &items); err != nil {
		if c.optional && errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// All re-reads the collection from the backend on every call.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	items, err := c.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.Key() == id {
			return item, nil
		}
	}
	return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
}

// Mutate loads the collection, hands it to fn and saves whatever fn returns,
// all while holding the collection lock. An error from fn aborts the save.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	l := c.db.lock(c.name)
	l.Lock()
	defer l.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	out, err := fn(items)
	if err != nil {
		if errors.Is(err, errSkipWrite) {
			return nil
		}
		return err
	}
	if out == nil {
		out = []T{}
	}
	return c.db.write(ctx, c.name, out)
}

// Insert appends v. A record with the same key already present is a conflict.
func (c *Collection[T]) Insert(ctx context.Context, v T) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		for _, item := range items {
			if item.Key() == v.Key() {
				return nil, fmt.Errorf("%s %q: %w", c.name, v.Key(), ErrConflict)
			}
		}
		return append(items, v), nil
	})
}

// Update applies fn to the stored record with the given key and returns the
// result as written.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(item *T) error) (T, error) {
	var updated T

	err := c.Mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if items[i].Key() != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			return items, nil
		}
		return nil, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
	})
	return updated, err
}

// Delete removes the record with the given key. Deleting an absent key is a no-op.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.Mutate(ctx, func(items []T) ([]T, error) {
		out := items[:0]
		for _, item := range items {
			if item.Key() != id {
				out = append(out, item)
			}
		}
		if len(out) == len(items) {
			return nil, errSkipWrite
		}
		return out, nil
	})
}

// Replace overwrites the whole collection with items, creating it when absent.
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	l := c.db.lock(c.name)
	l.Lock()
	defer l.Unlock()

	if items == nil {
		items = []T{}
	}
	return c.db.write(ctx, c.name, items)
}
