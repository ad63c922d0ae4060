package project

import (
	"time"

	"buildledger/internal/domain/client"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusQuoted    Status = "quoted"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on-hold"
)

type Phase string

const (
	PhaseStructural  Phase = "structural"
	PhaseFinishing   Phase = "finishing"
	PhaseFinalReview Phase = "final-review"
	PhaseCompleted   Phase = "completed"
)

type Project struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	ClientID        string           `json:"clientId"`
	Location        string           `json:"location"`
	StartDate       string           `json:"startDate"`
	TargetEndDate   string           `json:"targetEndDate"`
	EndDate         string           `json:"endDate,omitempty"`
	Budget          *float64         `json:"budget,omitempty"`
	Status          Status           `json:"status"`
	CurrentPhase    Phase            `json:"currentPhase"`
	Description     string           `json:"description,omitempty"`
	Rooms           []Room           `json:"rooms"`
	AdditionalCosts []AdditionalCost `json:"additionalCosts"`
	TotalEstimate   float64          `json:"totalEstimate"`
	ActualCost      *float64         `json:"actualCost,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func (p Project) Key() string { return p.ID }

// ProjectDetails is a Project with its client resolved at read time.
// Client is nil when the reference dangles.
type ProjectDetails struct {
	Project
	Client *client.Client `json:"client,omitempty"`
}

type Room struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Width          float64        `json:"width"`
	Length         float64        `json:"length"`
	Height         *float64       `json:"height,omitempty"`
	SquareFeet     float64        `json:"squareFeet"`
	DemolitionCost *float64       `json:"demolitionCost,omitempty"`
	WasteBinCost   *float64       `json:"wasteBinCost,omitempty"`
	Materials      []RoomMaterial `json:"materials"`
	Labor          []RoomLabor    `json:"labor"`
	Notes          string         `json:"notes,omitempty"`
}

type RoomMaterial struct {
	ID           string  `json:"id"`
	MaterialID   string  `json:"materialId"`
	MaterialName string  `json:"materialName"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	Vendor       string  `json:"vendor,omitempty"`
}

type RoomLabor struct {
	ID           string  `json:"id"`
	LaborID      string  `json:"laborId"`
	LaborName    string  `json:"laborName"`
	Hours        float64 `json:"hours"`
	Rate         float64 `json:"rate"`
	Amount       float64 `json:"amount"`
	ProviderID   string  `json:"providerId,omitempty"`
	ProviderName string  `json:"providerName,omitempty"`
}

// AdditionalCost is a permit, inspection or similar charge attached to a
// project or quotation, copied from the additional-costs catalog.
type AdditionalCost struct {
	ID       string  `json:"id"`
	CostID   string  `json:"costId"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	IsPaid   bool    `json:"isPaid"`
	PaidDate string  `json:"paidDate,omitempty"`
}

// Patch lists the mutable fields of a Project; nil means unchanged.
// UpdatedAt is set by the service, never by callers.
type Patch struct {
	Name            *string
	ClientID        *string
	Location        *string
	StartDate       *string
	TargetEndDate   *string
	EndDate         *string
	Budget          *float64
	Status          *Status
	CurrentPhase    *Phase
	Description     *string
	Rooms           *[]Room
	AdditionalCosts *[]AdditionalCost
	TotalEstimate   *float64
	ActualCost      *float64
	UpdatedAt       *time.Time
}

func (p Patch) Apply(pr *Project) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.ClientID != nil {
		pr.ClientID = *p.ClientID
	}
	if p.Location != nil {
		pr.Location = *p.Location
	}
	if p.StartDate != nil {
		pr.StartDate = *p.StartDate
	}
	if p.TargetEndDate != nil {
		pr.TargetEndDate = *p.TargetEndDate
	}
	if p.EndDate != nil {
		pr.EndDate = *p.EndDate
	}
	if p.Budget != nil {
		v := *p.Budget
		pr.Budget = &v
	}
	if p.Status != nil {
		pr.Status = *p.Status
	}
	if p.CurrentPhase != nil {
		pr.CurrentPhase = *p.CurrentPhase
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Rooms != nil {
		pr.Rooms = *p.Rooms
	}
	if p.AdditionalCosts != nil {
		pr.AdditionalCosts = *p.AdditionalCosts
	}
	if p.TotalEstimate != nil {
		pr.TotalEstimate = *p.TotalEstimate
	}
	if p.ActualCost != nil {
		v := *p.ActualCost
		pr.ActualCost = &v
	}
	if p.UpdatedAt != nil {
		pr.UpdatedAt = *p.UpdatedAt
	}
}
