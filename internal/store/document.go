package store

import (
	"context"
	"errors"
)

// Document is a singleton resource holding one JSON object rather than an array.
type Document[T any] struct {
	db   *DB
	name string
}

func NewDocument[T any](db *DB, name string) *Document[T] {
	return &Document[T]{db: db, name: name}
}

func (d *Document[T]) Get(ctx context.Context) (T, error) {
	var v T
	err := d.db.read(ctx, d.name, &v)
	return v, err
}

func (d *Document[T]) Mutate(ctx context.Context, fn func(v *T) error) (T, error) {
	l := d.db.lock(d.name)
	l.Lock()
	defer l.Unlock()

	var v T
	if err := d.db.read(ctx, d.name, &v); err != nil {
		return v, err
	}
	if err := fn(&v); err != nil {
		return v, err
	}
	return v, d.db.write(ctx, d.name, v)
}

// Upsert is Mutate that starts from the zero value when the resource does
// not exist yet.
func (d *Document[T]) Upsert(ctx context.Context, fn func(v *T) error) (T, error) {
	l := d.db.lock(d.name)
	l.Lock()
	defer l.Unlock()

	var v T
	if err := d.db.read(ctx, d.name, &v); err != nil && !errors.Is(err, ErrNotFound) {
		return v, err
	}
	if err := fn(&v); err != nil {
		return v, err
	}
	return v, d.db.write(ctx, d.name, v)
}

// Put overwrites the resource, creating it when absent.
func (d *Document[T]) Put(ctx context.Context, v T) error {
	l := d.db.lock(d.name)
	l.Lock()
	defer l.Unlock()

	return d.db.write(ctx, d.name, v)
}
