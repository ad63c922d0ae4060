package quotation

import (
	"time"

	"buildledger/internal/domain/client"
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
)

// NumberPrefix starts every quotation number, as in QT-0007.
const NumberPrefix = "QT"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Phase string

const (
	PhaseStructural Phase = "structural"
	PhaseFinishing  Phase = "finishing"
	PhaseFull       Phase = "full"
)

type Quotation struct {
	ID                  string                   `json:"id"`
	QuotationNumber     string                   `json:"quotationNumber"`
	ProjectID           string                   `json:"projectId"`
	ClientID            string                   `json:"clientId"`
	Phase               Phase                    `json:"phase"`
	Rooms               []project.Room           `json:"rooms"`
	AdditionalCosts     []project.AdditionalCost `json:"additionalCosts"`
	Items               []pricing.LineItem       `json:"items"`
	Subtotal            float64                  `json:"subtotal"`
	TaxRate             float64                  `json:"taxRate"`
	TaxAmount           float64                  `json:"taxAmount"`
	Discount            float64                  `json:"discount"`
	Total               float64                  `json:"total"`
	Status              Status                   `json:"status"`
	ValidUntil          string                   `json:"validUntil"`
	Terms               string                   `json:"terms,omitempty"`
	Notes               string                   `json:"notes,omitempty"`
	SpecialInstructions string                   `json:"specialInstructions,omitempty"`
	SignedBy            string                   `json:"signedBy,omitempty"`
	SignedDate          string                   `json:"signedDate,omitempty"`
	CreatedBy           string                   `json:"createdBy"`
	CreatedAt           time.Time                `json:"createdAt"`
	UpdatedAt           time.Time                `json:"updatedAt"`
}

func (q Quotation) Key() string { return q.ID }

func (q *Quotation) setTotals(t pricing.Totals) {
	q.Subtotal = t.Subtotal
	q.TaxRate = t.TaxRate
	q.TaxAmount = t.TaxAmount
	q.Discount = t.Discount
	q.Total = t.Total
}

// QuotationDetails is the fully resolved read model handed to renderers.
// Project carries its own client; either join may be nil when dangling.
type QuotationDetails struct {
	Quotation
	Project *project.ProjectDetails `json:"project,omitempty"`
	Client  *client.Client          `json:"client,omitempty"`
}

// Patch lists the mutable fields of a Quotation. Id, number, projectId,
// clientId and createdBy are fixed at creation.
type Patch struct {
	Phase               *Phase
	Rooms               *[]project.Room
	AdditionalCosts     *[]project.AdditionalCost
	Items               *[]pricing.LineItem
	Totals              *pricing.Totals
	Status              *Status
	ValidUntil          *string
	Terms               *string
	Notes               *string
	SpecialInstructions *string
	SignedBy            *string
	SignedDate          *string
	UpdatedAt           *time.Time
}

func (p Patch) Apply(q *Quotation) {
	if p.Phase != nil {
		q.Phase = *p.Phase
	}
	if p.Rooms != nil {
		q.Rooms = *p.Rooms
	}
	if p.AdditionalCosts != nil {
		q.AdditionalCosts = *p.AdditionalCosts
	}
	if p.Items != nil {
		q.Items = *p.Items
	}
	if p.Totals != nil {
		q.setTotals(*p.Totals)
	}
	if p.Status != nil {
		q.Status = *p.Status
	}
	if p.ValidUntil != nil {
		q.ValidUntil = *p.ValidUntil
	}
	if p.Terms != nil {
		q.Terms = *p.Terms
	}
	if p.Notes != nil {
		q.Notes = *p.Notes
	}
	if p.SpecialInstructions != nil {
		q.SpecialInstructions = *p.SpecialInstructions
	}
	if p.SignedBy != nil {
		q.SignedBy = *p.SignedBy
	}
	if p.SignedDate != nil {
		q.SignedDate = *p.SignedDate
	}
	if p.UpdatedAt != nil {
		q.UpdatedAt = *p.UpdatedAt
	}
}
