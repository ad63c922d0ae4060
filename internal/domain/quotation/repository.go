package quotation

import (
	"context"
	"fmt"

	"buildledger/internal/domain/client"
	"buildledger/internal/domain/project"
	"buildledger/internal/pkg/sequence"
	"buildledger/internal/store"
)

const collectionName = "quotations"

type ProjectLister interface {
	List(ctx context.Context) ([]project.Project, error)
}

type ClientLister interface {
	List(ctx context.Context) ([]client.Client, error)
}

type Repository struct {
	quotations *store.Collection[Quotation]
	projects   ProjectLister
	clients    ClientLister
	counter    *sequence.Counter
}

func NewRepository(db *store.DB, projects ProjectLister, clients ClientLister) *Repository {
	return &Repository{
		quotations: store.NewCollection[Quotation](db, collectionName),
		projects:   projects,
		clients:    clients,
		counter:    sequence.NewCounter(db),
	}
}

func (r *Repository) List(ctx context.Context) ([]Quotation, error) {
	return r.quotations.All(ctx)
}

// ListDetails returns every quotation joined with its project (itself
// joined with its client) and its client.
func (r *Repository) ListDetails(ctx context.Context) ([]QuotationDetails, error) {
	quotations, err := r.quotations.All(ctx)
	if err != nil {
		return nil, err
	}
	return r.join(ctx, quotations)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Quotation, error) {
	q, err := r.quotations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *Repository) GetDetails(ctx context.Context, id string) (*QuotationDetails, error) {
	q, err := r.quotations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.join(ctx, []Quotation{q})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create assigns the next QT- number and stores q within one locked
// load-modify-save cycle, so concurrent creates never share a number.
func (r *Repository) Create(ctx context.Context, q Quotation) (*Quotation, error) {
	err := r.quotations.Mutate(ctx, func(items []Quotation) ([]Quotation, error) {
		numbers := make([]string, 0, len(items))
		for _, existing := range items {
			if existing.ID == q.ID {
				return nil, fmt.Errorf("%s %q: %w", collectionName, q.ID, store.ErrConflict)
			}
			numbers = append(numbers, existing.QuotationNumber)
		}
		number, err := r.counter.Issue(ctx, NumberPrefix, numbers)
		if err != nil {
			return nil, err
		}
		q.QuotationNumber = number
		return append(items, q), nil
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// NextNumber previews the number the next Create would assign.
func (r *Repository) NextNumber(ctx context.Context) (string, error) {
	items, err := r.quotations.All(ctx)
	if err != nil {
		return "", err
	}
	numbers := make([]string, 0, len(items))
	for _, q := range items {
		numbers = append(numbers, q.QuotationNumber)
	}
	return r.counter.Peek(ctx, NumberPrefix, numbers)
}

func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*Quotation, error) {
	return r.Modify(ctx, id, func(q *Quotation) error {
		patch.Apply(q)
		return nil
	})
}

// Modify runs fn against the stored quotation under the collection lock. The
// change is discarded when fn returns an error.
func (r *Repository) Modify(ctx context.Context, id string, fn func(q *Quotation) error) (*Quotation, error) {
	updated, err := r.quotations.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.quotations.Delete(ctx, id)
}

// DeletionTarget reports what a deletion request needs to know about a
// quotation: its number and who created it.
func (r *Repository) DeletionTarget(ctx context.Context, id string) (string, string, error) {
	q, err := r.quotations.Get(ctx, id)
	if err != nil {
		return "", "", err
	}
	return q.QuotationNumber, q.CreatedBy, nil
}

func (r *Repository) Replace(ctx context.Context, quotations []Quotation) error {
	return r.quotations.Replace(ctx, quotations)
}

func (r *Repository) join(ctx context.Context, quotations []Quotation) ([]QuotationDetails, error) {
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

	out := make([]QuotationDetails, 0, len(quotations))
	for _, q := range quotations {
		d := QuotationDetails{Quotation: q}
		if p, ok := projectsByID[q.ProjectID]; ok {
			p := p
			d.Project = &p
		}
		if c, ok := clientsByID[q.ClientID]; ok {
			c := c
			d.Client = &c
		}
		out = append(out, d)
	}
	return out, nil
}
