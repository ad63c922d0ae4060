package invoice

import (
	"time"

	"buildledger/internal/domain/client"
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
)

// NumberPrefix starts every invoice number, as in INV-0012.
const NumberPrefix = "INV"

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

type Phase string

const (
	PhaseStructural Phase = "structural"
	PhaseFinishing  Phase = "finishing"
	PhaseFinal      Phase = "final"
)

type AdjustmentType string

const (
	AdjustmentExtra  AdjustmentType = "extra"
	AdjustmentCredit AdjustmentType = "credit"
	AdjustmentOther  AdjustmentType = "adjustment"
)

// Adjustment is an extra, credit or correction raised after quoting. Only
// approved adjustments count toward the subtotal.
type Adjustment struct {
	ID           string         `json:"id"`
	Description  string         `json:"description" validate:"required"`
	Type         AdjustmentType `json:"type" validate:"required,oneof=extra credit adjustment"`
	Amount       float64        `json:"amount" validate:"gte=0"`
	Approved     bool           `json:"approved"`
	ApprovedBy   string         `json:"approvedBy,omitempty"`
	ApprovedDate string         `json:"approvedDate,omitempty"`
}

// signed returns the amount as it affects the subtotal.
func (a Adjustment) signed() float64 {
	if a.Type == AdjustmentCredit {
		return -a.Amount
	}
	return a.Amount
}

type Invoice struct {
	ID                   string                 `json:"id"`
	InvoiceNumber        string                 `json:"invoiceNumber"`
	QuotationID          string                 `json:"quotationId,omitempty"`
	ProjectID            string                 `json:"projectId"`
	ClientID             string                 `json:"clientId"`
	Phase                Phase                  `json:"phase,omitempty"`
	Items                []pricing.LineItem     `json:"items"`
	ActualMaterialUsage  []project.RoomMaterial `json:"actualMaterialUsage,omitempty"`
	ActualLaborHours     []project.RoomLabor    `json:"actualLaborHours,omitempty"`
	ExtrasAndAdjustments []Adjustment           `json:"extrasAndAdjustments"`
	Subtotal             float64                `json:"subtotal"`
	TaxRate              float64                `json:"taxRate"`
	TaxAmount            float64                `json:"taxAmount"`
	Discount             float64                `json:"discount"`
	Total                float64                `json:"total"`
	PaymentStatus        PaymentStatus          `json:"paymentStatus"`
	AmountPaid           float64                `json:"amountPaid"`
	DueDate              string                 `json:"dueDate"`
	PaymentTerms         string                 `json:"paymentTerms,omitempty"`
	Notes                string                 `json:"notes,omitempty"`
	CreatedBy            string                 `json:"createdBy"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

func (i Invoice) Key() string { return i.ID }

// Balance is what the client still owes.
func (i Invoice) Balance() float64 { return i.Total - i.AmountPaid }

func (i *Invoice) setTotals(t pricing.Totals) {
	i.Subtotal = t.Subtotal
	i.TaxRate = t.TaxRate
	i.TaxAmount = t.TaxAmount
	i.Discount = t.Discount
	i.Total = t.Total
}

// Subtotal sums priced items and approved adjustments. Credits subtract.
func Subtotal(items []pricing.LineItem, adjustments []Adjustment) float64 {
	sum := pricing.Subtotal(items)
	for _, a := range adjustments {
		if a.Approved {
			sum += a.signed()
		}
	}
	return sum
}

// StatusFor derives the payment status from what has been paid so far.
func StatusFor(amountPaid, total float64) PaymentStatus {
	switch {
	case amountPaid <= 0:
		return PaymentUnpaid
	case amountPaid >= total:
		return PaymentPaid
	default:
		return PaymentPartial
	}
}

// InvoiceDetails is the fully resolved read model. Project carries its own
// client; either join may be nil when dangling.
type InvoiceDetails struct {
	Invoice
	Project *project.ProjectDetails `json:"project,omitempty"`
	Client  *client.Client          `json:"client,omitempty"`
}

// Patch lists the mutable fields of an Invoice. Id, number, quotationId,
// projectId, clientId and createdBy are fixed at creation.
type Patch struct {
	Phase                *Phase
	Items                *[]pricing.LineItem
	ActualMaterialUsage  *[]project.RoomMaterial
	ActualLaborHours     *[]project.RoomLabor
	ExtrasAndAdjustments *[]Adjustment
	Totals               *pricing.Totals
	PaymentStatus        *PaymentStatus
	AmountPaid           *float64
	DueDate              *string
	PaymentTerms         *string
	Notes                *string
	UpdatedAt            *time.Time
}

func (p Patch) Apply(i *Invoice) {
	if p.Phase != nil {
		i.Phase = *p.Phase
	}
	if p.Items != nil {
		i.Items = *p.Items
	}
	if p.ActualMaterialUsage != nil {
		i.ActualMaterialUsage = *p.ActualMaterialUsage
	}
	if p.ActualLaborHours != nil {
		i.ActualLaborHours = *p.ActualLaborHours
	}
	if p.ExtrasAndAdjustments != nil {
		i.ExtrasAndAdjustments = *p.ExtrasAndAdjustments
	}
	if p.Totals != nil {
		i.setTotals(*p.Totals)
	}
	if p.PaymentStatus != nil {
		i.PaymentStatus = *p.PaymentStatus
	}
	if p.AmountPaid != nil {
		i.AmountPaid = *p.AmountPaid
	}
	if p.DueDate != nil {
		i.DueDate = *p.DueDate
	}
	if p.PaymentTerms != nil {
		i.PaymentTerms = *p.PaymentTerms
	}
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	if p.UpdatedAt != nil {
		i.UpdatedAt = *p.UpdatedAt
	}
}
