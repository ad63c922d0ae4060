// Package pricing holds the line-item arithmetic shared by quotations and
// invoices. Figures are stored exactly as computed here.
package pricing

type ItemType string

const (
	ItemMaterial ItemType = "material"
	ItemLabor    ItemType = "labor"
)

type LineItem struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type" validate:"required,oneof=material labor"`
	ItemID      string   `json:"itemId"`
	ItemName    string   `json:"itemName" validate:"required"`
	Description string   `json:"description,omitempty"`
	Quantity    float64  `json:"quantity" validate:"gt=0"`
	Rate        float64  `json:"rate" validate:"gte=0"`
	Amount      float64  `json:"amount"`
}

type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"taxRate"`
	TaxAmount float64 `json:"taxAmount"`
	Discount  float64 `json:"discount"`
	Total     float64 `json:"total"`
}

// PriceItems returns a copy of items with amount = quantity × rate.
func PriceItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		it.Amount = it.Quantity * it.Rate
		out[i] = it
	}
	return out
}

func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

// Compute applies taxAmount = subtotal × taxRate / 100 and
// total = subtotal + taxAmount − discount.
func Compute(subtotal, taxRate, discount float64) Totals {
	tax := subtotal * taxRate / 100
	return Totals{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Discount:  discount,
		Total:     subtotal + tax - discount,
	}
}
