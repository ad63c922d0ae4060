package store

import "context"

// Backend persists whole collection resources by name. Save always overwrites
// the full resource; there is no partial patch at this boundary.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}
