package deletion

import "time"

// IDPrefix starts every deletion request id, as in del-req-1790000000000000.
const IDPrefix = "del-req"

type Type string

const (
	TypeQuotation Type = "quotation"
	TypeInvoice   Type = "invoice"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request asks an admin to delete one quotation or invoice. It moves from
// pending to approved or rejected exactly once.
type Request struct {
	ID              string     `json:"id"`
	Type            Type       `json:"type"`
	ItemID          string     `json:"itemId"`
	ItemNumber      string     `json:"itemNumber"`
	RequestedBy     string     `json:"requestedBy"`
	RequestedByName string     `json:"requestedByName"`
	Reason          string     `json:"reason"`
	Status          Status     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	ReviewNotes     string     `json:"reviewNotes,omitempty"`
}

func (r Request) Key() string { return r.ID }

func (r Request) IsPending() bool { return r.Status == StatusPending }

// Decision is the reviewer's verdict on a pending request.
type Decision struct {
	Status     Status
	Notes      string
	ReviewedBy string
	ReviewedAt time.Time
}
