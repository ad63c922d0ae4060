package deletion

type CreateRequest struct {
	Type       Type   `json:"type" validate:"required,oneof=quotation invoice"`
	ItemID     string `json:"itemId" validate:"required"`
	ItemNumber string `json:"itemNumber"`
	Reason     string `json:"reason" validate:"required,max=2000"`
}

type ReviewRequest struct {
	Status      Status `json:"status" validate:"required,oneof=approved rejected"`
	ReviewNotes string `json:"reviewNotes" validate:"max=2000"`
}
