package client

import "time"

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c Client) Key() string { return c.ID }

// Patch lists the mutable fields of a Client; nil means unchanged.
type Patch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	City    *string
}

func (p Patch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.City != nil {
		c.City = *p.City
	}
}

// Index maps client ids to records for read-time joins.
func Index(clients []Client) map[string]Client {
	byID := make(map[string]Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	return byID
}
