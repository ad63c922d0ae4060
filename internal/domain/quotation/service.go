package quotation

import (
	"context"
	"errors"
	"time"

	"buildledger/internal/domain/auth"
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
	"buildledger/internal/domain/settings"
	"buildledger/internal/pkg/validator"
	"buildledger/internal/store"

	"go.uber.org/zap"
)

const defaultValidity = 30 * 24 * time.Hour

type IDGenerator interface {
	New() string
}

type ProjectGetter interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*settings.CompanySettings, error)
}

// NumberRecorder counts issued document numbers.
type NumberRecorder interface {
	NumberIssued(kind string)
}

type Service struct {
	repo     *Repository
	projects ProjectGetter
	settings SettingsReader
	ids      IDGenerator
	metrics  NumberRecorder
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo *Repository, projects ProjectGetter, settings SettingsReader, ids IDGenerator, metrics NumberRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		projects: projects,
		settings: settings,
		ids:      ids,
		metrics:  metrics,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]QuotationDetails, error) {
	return s.repo.ListDetails(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*QuotationDetails, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *Service) NextNumber(ctx context.Context) (string, error) {
	return s.repo.NextNumber(ctx)
}

// Create builds a quotation for the project's client, prices its items and
// assigns id, number and timestamps. Ids and numbers in the request body
// are never used.
func (s *Service) Create(ctx context.Context, actor auth.Actor, req CreateQuotationRequest) (*QuotationDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	p, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, validator.Field("projectId", "exists")
		}
		return nil, err
	}

	taxRate, err := s.taxRate(ctx, req.TaxRate)
	if err != nil {
		return nil, err
	}

	items := pricing.PriceItems(s.assignItemIDs(req.Items))
	now := s.now().UTC()

	q := Quotation{
		ID:                  s.ids.New(),
		ProjectID:           p.ID,
		ClientID:            p.ClientID,
		Phase:               req.Phase,
		Rooms:               project.PriceRooms(req.Rooms),
		AdditionalCosts:     nonNilCosts(req.AdditionalCosts),
		Items:               items,
		Status:              req.Status,
		ValidUntil:          req.ValidUntil,
		Terms:               req.Terms,
		Notes:               req.Notes,
		SpecialInstructions: req.SpecialInstructions,
		CreatedBy:           actor.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if q.Phase == "" {
		q.Phase = PhaseFull
	}
	if q.Status == "" {
		q.Status = StatusDraft
	}
	if q.ValidUntil == "" {
		q.ValidUntil = now.Add(defaultValidity).Format(time.DateOnly)
	}
	q.setTotals(pricing.Compute(pricing.Subtotal(items), taxRate, req.Discount))

	created, err := s.repo.Create(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.NumberIssued("quotation")
	}

	s.log.Info("quotation created",
		zap.String("quotation_id", created.ID),
		zap.String("number", created.QuotationNumber),
		zap.String("project_id", created.ProjectID),
		zap.String("by", actor.ID),
	)
	return s.repo.GetDetails(ctx, created.ID)
}

// Update patches a quotation. Touching items, tax rate or discount
// recomputes the stored totals.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateQuotationRequest) (*QuotationDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	patch := Patch{
		Phase:               req.Phase,
		AdditionalCosts:     req.AdditionalCosts,
		Status:              req.Status,
		ValidUntil:          req.ValidUntil,
		Terms:               req.Terms,
		Notes:               req.Notes,
		SpecialInstructions: req.SpecialInstructions,
		SignedBy:            req.SignedBy,
		SignedDate:          req.SignedDate,
		UpdatedAt:           &now,
	}
	if req.Rooms != nil {
		rooms := project.PriceRooms(*req.Rooms)
		patch.Rooms = &rooms
	}

	if req.Items != nil {
		items := pricing.PriceItems(s.assignItemIDs(*req.Items))
		patch.Items = &items
	}
	repricing := req.Items != nil || req.TaxRate != nil || req.Discount != nil

	_, err := s.repo.Modify(ctx, id, func(q *Quotation) error {
		patch.Apply(q)
		if repricing {
			taxRate, discount := q.TaxRate, q.Discount
			if req.TaxRate != nil {
				taxRate = *req.TaxRate
			}
			if req.Discount != nil {
				discount = *req.Discount
			}
			q.setTotals(pricing.Compute(pricing.Subtotal(q.Items), taxRate, discount))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("quotation updated", zap.String("quotation_id", id), zap.String("by", actor.ID))
	return s.repo.GetDetails(ctx, id)
}

// Delete removes a quotation outright. Only admins may; everyone else gets
// ErrDeletionRequestRequired and must file a deletion request.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrDeletionRequestRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("quotation deleted", zap.String("quotation_id", id), zap.String("by", actor.ID))
	return nil
}

func (s *Service) taxRate(ctx context.Context, requested *float64) (float64, error) {
	if requested != nil {
		return *requested, nil
	}
	cs, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return cs.DefaultTaxRate, nil
}

func (s *Service) assignItemIDs(items []pricing.LineItem) []pricing.LineItem {
	out := make([]pricing.LineItem, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = s.ids.New()
		}
		out[i] = it
	}
	return out
}

func nonNilCosts(costs []project.AdditionalCost) []project.AdditionalCost {
	if costs == nil {
		return []project.AdditionalCost{}
	}
	return costs
}
