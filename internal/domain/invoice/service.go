package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buildledger/internal/domain/auth"
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
	"buildledger/internal/domain/quotation"
	"buildledger/internal/domain/settings"
	"buildledger/internal/pkg/validator"
	"buildledger/internal/store"

	"go.uber.org/zap"
)

const defaultTermDays = 30

type IDGenerator interface {
	New() string
}

type ProjectGetter interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
}

type QuotationGetter interface {
	GetByID(ctx context.Context, id string) (*quotation.Quotation, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*settings.CompanySettings, error)
}

type NumberRecorder interface {
	NumberIssued(kind string)
}

type Service struct {
	repo       *Repository
	projects   ProjectGetter
	quotations QuotationGetter
	settings   SettingsReader
	ids        IDGenerator
	metrics    NumberRecorder
	log        *zap.Logger
	now        func() time.Time
}

func NewService(repo *Repository, projects ProjectGetter, quotations QuotationGetter, settings SettingsReader, ids IDGenerator, metrics NumberRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		projects:   projects,
		quotations: quotations,
		settings:   settings,
		ids:        ids,
		metrics:    metrics,
		log:        log,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]InvoiceDetails, error) {
	return s.repo.ListDetails(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (*InvoiceDetails, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *Service) NextNumber(ctx context.Context) (string, error) {
	return s.repo.NextNumber(ctx)
}

// Create bills a quotation or a bare project. Values named in the request
// win over those copied from the quotation; tax rate and payment terms fall
// back to the company settings.
func (s *Service) Create(ctx context.Context, actor auth.Actor, req CreateInvoiceRequest) (*InvoiceDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv := Invoice{
		ID:                  s.ids.New(),
		QuotationID:         req.QuotationID,
		Phase:               req.Phase,
		ActualMaterialUsage: req.ActualMaterialUsage,
		ActualLaborHours:    req.ActualLaborHours,
		PaymentStatus:       PaymentUnpaid,
		DueDate:             req.DueDate,
		PaymentTerms:        req.PaymentTerms,
		Notes:               req.Notes,
		CreatedBy:           actor.ID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	var (
		items    = req.Items
		taxRate  = req.TaxRate
		discount float64
	)
	if req.QuotationID != "" {
		q, err := s.quotations.GetByID(ctx, req.QuotationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, validator.Field("quotationId", "exists")
			}
			return nil, err
		}
		inv.ProjectID, inv.ClientID = q.ProjectID, q.ClientID
		if len(items) == 0 {
			items = q.Items
		}
		if taxRate == nil {
			taxRate = &q.TaxRate
		}
		discount = q.Discount
	} else {
		p, err := s.projects.GetByID(ctx, req.ProjectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, validator.Field("projectId", "exists")
			}
			return nil, err
		}
		inv.ProjectID, inv.ClientID = p.ID, p.ClientID
	}
	if req.Discount != nil {
		discount = *req.Discount
	}

	cs, err := s.companySettings(ctx)
	if err != nil {
		return nil, err
	}
	rate := cs.DefaultTaxRate
	if taxRate != nil {
		rate = *taxRate
	}
	if inv.PaymentTerms == "" {
		inv.PaymentTerms = cs.DefaultPaymentTerms
	}
	if inv.DueDate == "" {
		inv.DueDate = now.AddDate(0, 0, defaultTermDays).Format(time.DateOnly)
	}

	inv.Items = pricing.PriceItems(s.assignItemIDs(items))
	inv.ExtrasAndAdjustments = s.mergeAdjustments(req.ExtrasAndAdjustments, nil)
	inv.setTotals(pricing.Compute(Subtotal(inv.Items, inv.ExtrasAndAdjustments), rate, discount))

	created, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.NumberIssued("invoice")
	}

	s.log.Info("invoice created",
		zap.String("invoice_id", created.ID),
		zap.String("number", created.InvoiceNumber),
		zap.String("quotation_id", created.QuotationID),
		zap.String("project_id", created.ProjectID),
		zap.String("by", actor.ID),
	)
	return s.repo.GetDetails(ctx, created.ID)
}

// Update patches an invoice and recomputes totals whenever an input to them
// changes.
func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, req UpdateInvoiceRequest) (*InvoiceDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	patch := Patch{
		Phase:               req.Phase,
		ActualMaterialUsage: req.ActualMaterialUsage,
		ActualLaborHours:    req.ActualLaborHours,
		DueDate:             req.DueDate,
		PaymentTerms:        req.PaymentTerms,
		Notes:               req.Notes,
		UpdatedAt:           &now,
	}
	if req.Items != nil {
		items := pricing.PriceItems(s.assignItemIDs(*req.Items))
		patch.Items = &items
	}
	repricing := req.Items != nil || req.ExtrasAndAdjustments != nil || req.TaxRate != nil || req.Discount != nil

	_, err := s.repo.Modify(ctx, id, func(inv *Invoice) error {
		if req.ExtrasAndAdjustments != nil {
			adjustments := s.mergeAdjustments(*req.ExtrasAndAdjustments, inv.ExtrasAndAdjustments)
			patch.ExtrasAndAdjustments = &adjustments
		}
		patch.Apply(inv)
		if repricing {
			taxRate, discount := inv.TaxRate, inv.Discount
			if req.TaxRate != nil {
				taxRate = *req.TaxRate
			}
			if req.Discount != nil {
				discount = *req.Discount
			}
			inv.setTotals(pricing.Compute(Subtotal(inv.Items, inv.ExtrasAndAdjustments), taxRate, discount))
			inv.PaymentStatus = StatusFor(inv.AmountPaid, inv.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("invoice updated", zap.String("invoice_id", id), zap.String("by", actor.ID))
	return s.repo.GetDetails(ctx, id)
}

// RecordPayment adds amount to what has been paid and derives the payment
// status. Paying more than the outstanding balance fails without a write.
func (s *Service) RecordPayment(ctx context.Context, actor auth.Actor, id string, req PaymentRequest) (*InvoiceDetails, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv, err := s.repo.Modify(ctx, id, func(inv *Invoice) error {
		if req.Amount > inv.Balance()+0.005 {
			return fmt.Errorf("%w: balance %.2f, payment %.2f", ErrOverpayment, inv.Balance(), req.Amount)
		}
		inv.AmountPaid += req.Amount
		inv.PaymentStatus = StatusFor(inv.AmountPaid, inv.Total)
		inv.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("invoice payment recorded",
		zap.String("invoice_id", id),
		zap.Float64("amount", req.Amount),
		zap.String("payment_status", string(inv.PaymentStatus)),
		zap.String("by", actor.ID),
	)
	return s.repo.GetDetails(ctx, id)
}

// ApproveAdjustment marks an extra or credit as approved, bringing it into
// the totals. Admin only.
func (s *Service) ApproveAdjustment(ctx context.Context, actor auth.Actor, id, adjustmentID string, req ApproveAdjustmentRequest) (*InvoiceDetails, error) {
	if !actor.IsAdmin() {
		return nil, auth.ErrForbidden
	}
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := req.ApprovedDate
	if date == "" {
		date = now.Format(time.DateOnly)
	}
	_, err := s.repo.Modify(ctx, id, func(inv *Invoice) error {
		for i := range inv.ExtrasAndAdjustments {
			a := &inv.ExtrasAndAdjustments[i]
			if a.ID != adjustmentID {
				continue
			}
			a.Approved = true
			a.ApprovedBy = actor.ID
			a.ApprovedDate = date
			inv.setTotals(pricing.Compute(Subtotal(inv.Items, inv.ExtrasAndAdjustments), inv.TaxRate, inv.Discount))
			inv.PaymentStatus = StatusFor(inv.AmountPaid, inv.Total)
			inv.UpdatedAt = now
			return nil
		}
		return fmt.Errorf("adjustment %q: %w", adjustmentID, store.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("invoice adjustment approved",
		zap.String("invoice_id", id),
		zap.String("adjustment_id", adjustmentID),
		zap.String("by", actor.ID),
	)
	return s.repo.GetDetails(ctx, id)
}

// Delete removes an invoice outright. Only admins may.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrDeletionRequestRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("invoice deleted", zap.String("invoice_id", id), zap.String("by", actor.ID))
	return nil
}

// companySettings returns the stored settings, or zero defaults when none
// have been saved yet.
func (s *Service) companySettings(ctx context.Context) (settings.CompanySettings, error) {
	cs, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return settings.CompanySettings{}, nil
		}
		return settings.CompanySettings{}, err
	}
	return *cs, nil
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

// mergeAdjustments carries approval over from stored adjustments whose id,
// type and amount are unchanged. Everything else arrives unapproved; approval
// only happens through ApproveAdjustment.
func (s *Service) mergeAdjustments(incoming, stored []Adjustment) []Adjustment {
	byID := make(map[string]Adjustment, len(stored))
	for _, a := range stored {
		byID[a.ID] = a
	}

	out := make([]Adjustment, len(incoming))
	for i, a := range incoming {
		prev, known := byID[a.ID]
		if a.ID == "" || !known {
			a.ID = s.ids.New()
		}
		a.Approved, a.ApprovedBy, a.ApprovedDate = false, "", ""
		if known && prev.Type == a.Type && prev.Amount == a.Amount {
			a.Approved, a.ApprovedBy, a.ApprovedDate = prev.Approved, prev.ApprovedBy, prev.ApprovedDate
		}
		out[i] = a
	}
	return out
}
