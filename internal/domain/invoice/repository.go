package invoice

import (
	"context"
	"fmt"

	"buildledger/internal/domain/client"
	"buildledger/internal/domain/project"
	"buildledger/internal/pkg/sequence"
	"buildledger/internal/store"
)

const collectionName = "invoices"

type ProjectLister interface {
	List(ctx context.Context) ([]project.Project, error)
}

type ClientLister interface {
	List(ctx context.Context) ([]client.Client, error)
}

type Repository struct {
	invoices *store.Collection[Invoice]
	projects ProjectLister
	clients  ClientLister
	counter  *sequence.Counter
}

func NewRepository(db *store.DB, projects ProjectLister, clients ClientLister) *Repository {
	return &Repository{
		invoices: store.NewCollection[Invoice](db, collectionName),
		projects: projects,
		clients:  clients,
		counter:  sequence.NewCounter(db),
	}
}

func (r *Repository) List(ctx context.Context) ([]Invoice, error) {
	return r.invoices.All(ctx)
}

func (r *Repository) ListDetails(ctx context.Context) ([]InvoiceDetails, error) {
	invoices, err := r.invoices.All(ctx)
	if err != nil {
		return nil, err
	}
	return r.join(ctx, invoices)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	inv, err := r.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) GetDetails(ctx context.Context, id string) (*InvoiceDetails, error) {
	inv, err := r.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.join(ctx, []Invoice{inv})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create assigns the next INV- number and stores inv under the collection lock.
func (r *Repository) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	err := r.invoices.Mutate(ctx, func(items []Invoice) ([]Invoice, error) {
		numbers := make([]string, 0, len(items))
		for _, existing := range items {
			if existing.ID == inv.ID {
				return nil, fmt.Errorf("%s %q: %w", collectionName, inv.ID, store.ErrConflict)
			}
			numbers = append(numbers, existing.InvoiceNumber)
		}
		number, err := r.counter.Issue(ctx, NumberPrefix, numbers)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNumber = number
		return append(items, inv), nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *Repository) NextNumber(ctx context.Context) (string, error) {
	items, err := r.invoices.All(ctx)
	if err != nil {
		return "", err
	}
	numbers := make([]string, 0, len(items))
	for _, inv := range items {
		numbers = append(numbers, inv.InvoiceNumber)
	}
	return r.counter.Peek(ctx, NumberPrefix, numbers)
}

func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Invoice, error) {
	return r.Modify(ctx, id, func(inv *Invoice) error {
		patch.Apply(inv)
		return nil
	})
}

// Modify runs fn against the stored invoice under the collection lock. The
// change is discarded when fn returns an error.
func (r *Repository) Modify(ctx context.Context, id string, fn func(inv *Invoice) error) (*Invoice, error) {
	updated, err := r.invoices.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.invoices.Delete(ctx, id)
}

// DeletionTarget reports an invoice's number and creator for deletion requests.
func (r *Repository) DeletionTarget(ctx context.Context, id string) (string, string, error) {
	inv, err := r.invoices.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return inv.InvoiceNumber, inv.CreatedBy, nil
}

func (r *Repository) Replace(ctx context.Context, invoices []Invoice) error {
	return r.invoices.Replace(ctx, invoices)
}

func (r *Repository) join(ctx context.Context, invoices []Invoice) ([]InvoiceDetails, error) {
	projects, err := r.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	clients, err := r.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	projectsByID := project.Index(project.Join(projects, clients))
	clientsByID := client.Index(clients)

	out := make([]InvoiceDetails, 0, len(invoices))
	for _, inv := range invoices {
		d := InvoiceDetails{Invoice: inv}
		if p, ok := projectsByID[inv.ProjectID]; ok {
			d.Project = &p
		}
		if c, ok := clientsByID[inv.ClientID]; ok {
			d.Client = &c
		}
		out = append(out, d)
	}
	return out, nil
}
