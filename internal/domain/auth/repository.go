package auth

import (
	"context"
	"fmt"
	"strings"

	"buildledger/internal/store"
)

const collectionName = "users"

type Repository struct {
	users *store.Collection[User]
}

func NewRepository(db *store.DB) *Repository {
	return &Repository{users: store.NewCollection[User](db, collectionName)}
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	return r.users.All(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := r.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail matches case-insensitively.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	users, err := r.users.All(ctx)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, store.ErrNotFound)
}

// Replace overwrites the user list; used by the seeder.
func (r *Repository) Replace(ctx context.Context, users []User) error {
	return r.users.Replace(ctx, users)
}
