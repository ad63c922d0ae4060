package client

import (
	"context"

	"buildledger/internal/store"
)

const collectionName = "clients"

type Repository struct {
	clients *store.Collection[Client]
}

func NewRepository(db *store.DB) *Repository {
	return &Repository{clients: store.NewCollection[Client](db, collectionName)}
}

func (r *Repository) List(ctx context.Context) ([]Client, error) {
	return r.clients.All(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Client, error) {
	c, err := r.clients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Add(ctx context.Context, c Client) error {
	return r.clients.Insert(ctx, c)
}

func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Client, error) {
	updated, err := r.clients.Update(ctx, id, func(c *Client) error {
		patch.Apply(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.clients.Delete(ctx, id)
}

func (r *Repository) Replace(ctx context.Context, clients []Client) error {
	return r.clients.Replace(ctx, clients)
}
