package deletion

import (
	"context"
	"fmt"

	"buildledger/internal/store"
)

const collectionName = "deletion-requests"

// Repository stores deletion requests. The collection is optional: a data
// directory without one simply has no requests yet.
type Repository struct {
	requests *store.Collection[Request]
}

func NewRepository(db *store.DB) *Repository {
	return &Repository{requests: store.NewCollection[Request](db, collectionName, store.Optional())}
}

func (r *Repository) List(ctx context.Context) ([]Request, error) {
	return r.requests.All(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Request, error) {
	req, err := r.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// AddPending stores req unless the same item already has a pending request.
func (r *Repository) AddPending(ctx context.Context, req Request) error {
	return r.requests.Mutate(ctx, func(items []Request) ([]Request, error) {
		for _, existing := range items {
			if existing.ID == req.ID {
				return nil, fmt.Errorf("%s %q: %w", collectionName, req.ID, store.ErrConflict)
			}
			if existing.IsPending() && existing.Type == req.Type && existing.ItemID == req.ItemID {
				return nil, ErrDuplicatePending
			}
		}
		return append(items, req), nil
	})
}

// Review records d on a pending request. A request that has already been
// reviewed is left untouched and ErrAlreadyReviewed is returned.
func (r *Repository) Review(ctx context.Context, id string, d Decision) (*Request, error) {
	updated, err := r.requests.Update(ctx, id, func(req *Request) error {
		if !req.IsPending() {
			return ErrAlreadyReviewed
		}
		reviewedAt := d.ReviewedAt
		req.Status = d.Status
		req.ReviewNotes = d.Notes
		req.ReviewedBy = d.ReviewedBy
		req.ReviewedAt = &reviewedAt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.requests.Delete(ctx, id)
}

func (r *Repository) Replace(ctx context.Context, requests []Request) error {
	return r.requests.Replace(ctx, requests)
}
