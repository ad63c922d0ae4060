package quotation

import (
	"buildledger/internal/domain/pricing"
	"buildledger/internal/domain/project"
)

type CreateQuotationRequest struct {
	ProjectID           string                   `json:"projectId" validate:"required"`
	Phase               Phase                    `json:"phase" validate:"omitempty,oneof=structural finishing full"`
	Rooms               []project.Room           `json:"rooms"`
	AdditionalCosts     []project.AdditionalCost `json:"additionalCosts"`
	Items               []pricing.LineItem       `json:"items" validate:"dive"`
	TaxRate             *float64                 `json:"taxRate" validate:"omitempty,gte=0,lte=100"`
	Discount            float64                  `json:"discount" validate:"gte=0"`
	Status              Status                   `json:"status" validate:"omitempty,oneof=draft sent approved rejected"`
	ValidUntil          string                   `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Terms               string                   `json:"terms"`
	Notes               string                   `json:"notes"`
	SpecialInstructions string                   `json:"specialInstructions"`
}

type UpdateQuotationRequest struct {
	Phase               *Phase                    `json:"phase" validate:"omitempty,oneof=structural finishing full"`
	Rooms               *[]project.Room           `json:"rooms"`
	AdditionalCosts     *[]project.AdditionalCost `json:"additionalCosts"`
	Items               *[]pricing.LineItem       `json:"items" validate:"omitempty,dive"`
	TaxRate             *float64                  `json:"taxRate" validate:"omitempty,gte=0,lte=100"`
	Discount            *float64                  `json:"discount" validate:"omitempty,gte=0"`
	Status              *Status                   `json:"status" validate:"omitempty,oneof=draft sent approved rejected"`
	ValidUntil          *string                   `json:"validUntil" validate:"omitempty,datetime=2006-01-02"`
	Terms               *string                   `json:"terms"`
	Notes               *string                   `json:"notes"`
	SpecialInstructions *string                   `json:"specialInstructions"`
	SignedBy            *string                   `json:"signedBy"`
	SignedDate          *string                   `json:"signedDate" validate:"omitempty,datetime=2006-01-02"`
}

type NextNumberResponse struct {
	Number string `json:"number"`
}
