package catalog

import "time"

type MaterialType string

const (
	MaterialBuilding  MaterialType = "building"
	MaterialFinishing MaterialType = "finishing"
)

type Material struct {
	ID                     string       `json:"id"`
	Name                   string       `json:"name"`
	Description            string       `json:"description,omitempty"`
	Unit                   string       `json:"unit"`
	Rate                   float64      `json:"rate"`
	Category               string       `json:"category"`
	MaterialType           MaterialType `json:"materialType"`
	RoomTypes              []string     `json:"roomTypes,omitempty"`
	DefaultQuantityPerSqFt *float64     `json:"defaultQuantityPerSqFt,omitempty"`
	VendorLinks            []VendorLink `json:"vendorLinks,omitempty"`
	CreatedAt              time.Time    `json:"createdAt"`
}

func (m Material) Key() string { return m.ID }

type VendorLink struct {
	VendorName  string   `json:"vendorName"`
	URL         string   `json:"url"`
	LastPrice   *float64 `json:"lastPrice,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
}

type Labor struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	HourlyRate  float64         `json:"hourlyRate"`
	JobRate     *float64        `json:"jobRate,omitempty"`
	Category    string          `json:"category"`
	Trade       string          `json:"trade"`
	Providers   []TradeProvider `json:"providers,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (l Labor) Key() string { return l.ID }

type TradeProvider struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email,omitempty"`
	HourlyRate float64  `json:"hourlyRate"`
	JobRate    *float64 `json:"jobRate,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

type RoomTemplate struct {
	ID                    string   `json:"id"`
	RoomType              string   `json:"roomType"`
	DefaultMaterials      []string `json:"defaultMaterials"`
	DefaultLabor          []string `json:"defaultLabor"`
	EstimatedHoursPerSqFt float64  `json:"estimatedHoursPerSqFt"`
}

func (r RoomTemplate) Key() string { return r.ID }

type Trade struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Providers   []TradeProvider `json:"providers"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (t Trade) Key() string { return t.ID }

type CostCategory string

const (
	CostPermit     CostCategory = "permit"
	CostInspection CostCategory = "inspection"
	CostWaste      CostCategory = "waste"
	CostEquipment  CostCategory = "equipment"
	CostOther      CostCategory = "other"
)

type AdditionalCost struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	DefaultCost float64      `json:"defaultCost"`
	Category    CostCategory `json:"category"`
	IsEditable  bool         `json:"isEditable"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (a AdditionalCost) Key() string { return a.ID }
