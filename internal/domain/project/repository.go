package project

import (
	"context"

	"buildledger/internal/domain/client"
	"buildledger/internal/store"
)

const collectionName = "projects"

// ClientLister is the client collection as seen by the project join.
type ClientLister interface {
	List(ctx context.Context) ([]client.Client, error)
}

type Repository struct {
	projects *store.Collection[Project]
	clients  ClientLister
}

func NewRepository(db *store.DB, clients ClientLister) *Repository {
	return &Repository{
		projects: store.NewCollection[Project](db, collectionName),
		clients:  clients,
	}
}

func (r *Repository) List(ctx context.Context) ([]Project, error) {
	return r.projects.All(ctx)
}

// ListDetails returns every project joined with its client.
func (r *Repository) ListDetails(ctx context.Context) ([]ProjectDetails, error) {
	projects, err := r.projects.All(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := r.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return Join(projects, clients), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Project, error) {
	p, err := r.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetDetails(ctx context.Context, id string) (*ProjectDetails, error) {
	p, err := r.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clients, err := r.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	d := Join([]Project{p}, clients)[0]
	return &d, nil
}

func (r *Repository) Add(ctx context.Context, p Project) error {
	return r.projects.Insert(ctx, p)
}

func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Project, error) {
	updated, err := r.projects.Update(ctx, id, func(p *Project) error {
		patch.Apply(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.projects.Delete(ctx, id)
}

func (r *Repository) Replace(ctx context.Context, projects []Project) error {
	return r.projects.Replace(ctx, projects)
}

// Join resolves each project's clientId against clients. Unknown ids leave
// Client nil. The returned clients are copies.
func Join(projects []Project, clients []client.Client) []ProjectDetails {
	byID := client.Index(clients)

	out := make([]ProjectDetails, 0, len(projects))
	for _, p := range projects {
		d := ProjectDetails{Project: p}
		if c, ok := byID[p.ClientID]; ok {
			c := c
			d.Client = &c
		}
		out = append(out, d)
	}
	return out
}

// Index maps project ids to their joined details.
func Index(details []ProjectDetails) map[string]ProjectDetails {
	byID := make(map[string]ProjectDetails, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}
	return byID
}
