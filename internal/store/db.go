package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Recorder receives one observation per backend load or save.
type Recorder interface {
	ObserveStoreOp(collection, op string, err error)
}

// DB couples a Backend with collection-level locks. Every load-modify-save
// cycle on a collection runs under that collection's mutex, so concurrent
// writers inside one process cannot lose each other's updates. Separate
// processes sharing a data directory are not coordinated.
type DB struct {
	backend  Backend
	log      *zap.Logger
	recorder Recorder

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*DB)

func WithLogger(log *zap.Logger) Option {
	return func(d *DB) {
		if log != nil {
			d.log = log
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(d *DB) { d.recorder = r }
}

func New(backend Backend, opts ...Option) *DB {
	d := &DB{
		backend: backend,
		log:     zap.NewNop(),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DB) lock(name string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()

	l, ok := d.locks[name]
	if !ok {
		l = &sync.Mutex{}
		d.locks[name] = l
	}
	return l
}

func (d *DB) read(ctx context.Context, name string, v any) error {
	data, err := d.backend.Load(ctx, name)
	d.observe(name, "load", err)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		d.log.Error("collection decode failed", zap.String("collection", name), zap.Error(err))
		return &StorageError{Op: "decode", Collection: name, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return nil
}

func (d *DB) write(ctx context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Collection: name, Err: err}
	}

	err = d.backend.Save(ctx, name, data)
	d.observe(name, "save", err)
	if err != nil {
		d.log.Error("collection save failed", zap.String("collection", name), zap.Error(err))
	}
	return err
}

func (d *DB) observe(name, op string, err error) {
	if d.recorder != nil {
		d.recorder.ObserveStoreOp(name, op, err)
	}
}
