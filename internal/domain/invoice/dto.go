package invoice

import (
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
)

// CreateInvoiceRequest either names a quotation to bill, whose project,
// client, items, tax rate and discount are copied, or a project directly.
type CreateInvoiceRequest struct {
	QuotationID          string                 `json:"quotationId"`
	ProjectID            string                 `json:"projectId" validate:"required_without=QuotationID"`
	Phase                Phase                  `json:"phase" validate:"omitempty,oneof=structural finishing final"`
	Items                []pricing.LineItem     `json:"items" validate:"dive"`
	ActualMaterialUsage  []project.RoomMaterial `json:"actualMaterialUsage"`
	ActualLaborHours     []project.RoomLabor    `json:"actualLaborHours"`
	ExtrasAndAdjustments []Adjustment           `json:"extrasAndAdjustments" validate:"dive"`
	TaxRate              *float64               `json:"taxRate" validate:"omitempty,gte=0,lte=100"`
	Discount             *float64               `json:"discount" validate:"omitempty,gte=0"`
	DueDate              string                 `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentTerms         string                 `json:"paymentTerms"`
	Notes                string                 `json:"notes"`
}

type UpdateInvoiceRequest struct {
	Phase                *Phase                  `json:"phase" validate:"omitempty,oneof=structural finishing final"`
	Items                *[]pricing.LineItem     `json:"items" validate:"omitempty,dive"`
	ActualMaterialUsage  *[]project.RoomMaterial `json:"actualMaterialUsage"`
	ActualLaborHours     *[]project.RoomLabor    `json:"actualLaborHours"`
	ExtrasAndAdjustments *[]Adjustment           `json:"extrasAndAdjustments" validate:"omitempty,dive"`
	TaxRate              *float64                `json:"taxRate" validate:"omitempty,gte=0,lte=100"`
	Discount             *float64                `json:"discount" validate:"omitempty,gte=0"`
	DueDate              *string                 `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	PaymentTerms         *string                 `json:"paymentTerms"`
	Notes                *string                 `json:"notes"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

// ApproveAdjustmentRequest marks one extra or credit as agreed by the client.
type ApproveAdjustmentRequest struct {
	ApprovedDate string `json:"approvedDate" validate:"omitempty,datetime=2006-01-02"`
}

type NextNumberResponse struct {
	Number string `json:"number"`
}
