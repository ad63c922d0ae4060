package settings

import (
	"context"

	"buildledger/internal/store"
)

const documentName = "company"

type Repository struct {
	doc *store.Document[CompanySettings]
}

func NewRepository(db *store.DB) *Repository {
	return &Repository{doc: store.NewDocument[CompanySettings](db, documentName)}
}

func (r *Repository) Get(ctx context.Context) (*CompanySettings, error) {
	s, err := r.doc.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Update(ctx context.Context, patch Patch) (*CompanySettings, error) {
	s, err := r.doc.Mutate(ctx, func(s *CompanySettings) error {
		patch.Apply(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Put(ctx context.Context, s CompanySettings) error {
	return r.doc.Put(ctx, s)
}
