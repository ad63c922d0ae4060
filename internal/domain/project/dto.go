package project

type CreateProjectRequest struct {
	Name            string           `json:"name" validate:"required,max=200"`
	ClientID        string           `json:"clientId" validate:"required"`
	Location        string           `json:"location" validate:"max=500"`
	StartDate       string           `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	TargetEndDate   string           `json:"targetEndDate" validate:"omitempty,datetime=2006-01-02"`
	Budget          *float64         `json:"budget" validate:"omitempty,gte=0"`
	Status          Status           `json:"status" validate:"omitempty,oneof=draft quoted active completed on-hold"`
	CurrentPhase    Phase            `json:"currentPhase" validate:"omitempty,oneof=structural finishing final-review completed"`
	Description     string           `json:"description"`
	Rooms           []Room           `json:"rooms"`
	AdditionalCosts []AdditionalCost `json:"additionalCosts"`
}

type UpdateProjectRequest struct {
	Name            *string           `json:"name" validate:"omitempty,min=1,max=200"`
	ClientID        *string           `json:"clientId" validate:"omitempty,min=1"`
	Location        *string           `json:"location" validate:"omitempty,max=500"`
	StartDate       *string           `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	TargetEndDate   *string           `json:"targetEndDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string           `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Budget          *float64          `json:"budget" validate:"omitempty,gte=0"`
	Status          *Status           `json:"status" validate:"omitempty,oneof=draft quoted active completed on-hold"`
	CurrentPhase    *Phase            `json:"currentPhase" validate:"omitempty,oneof=structural finishing final-review completed"`
	Description     *string           `json:"description"`
	Rooms           *[]Room           `json:"rooms"`
	AdditionalCosts *[]AdditionalCost `json:"additionalCosts"`
	ActualCost      *float64          `json:"actualCost" validate:"omitempty,gte=0"`
}
