package models

// Scope says which kitchen area a line item belongs to.
type Scope string

const (
	ScopeOpen    Scope = "OPEN"
	ScopeWorking Scope = "WORKING"
)

// Project is the quotation a line item belongs to. Read-only here.
type Project struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Customer        int        `json:"customer"`
	CustomerName    string     `json:"customer_name"`
	BudgetTier      BudgetTier `json:"budget_tier"`
	ReferenceNumber string     `json:"reference_number"`
}

func (p Project) GetID() int { return p.ID }

// LineItem is one cabinet inside a project. The computed fields are filled
// in by the backend's compute endpoints; the client never writes them.
type LineItem struct {
	ID              int    `json:"id,omitempty"`
	Project         int    `json:"project"`
	CabinetType     int    `json:"cabinet_type"`
	CabinetMaterial int    `json:"cabinet_material"`
	DoorMaterial    int    `json:"door_material"`
	WidthMM         int    `json:"width_mm"`
	DepthMM         int    `json:"depth_mm"`
	HeightMM        int    `json:"height_mm"`
	Qty             int    `json:"qty"`
	Scope           Scope  `json:"scope"`
	Remarks         string `json:"remarks,omitempty"`

	CabinetTypeName     string `json:"cabinet_type_name,omitempty"`
	CabinetMaterialName string `json:"cabinet_material_name,omitempty"`
	DoorMaterialName    string `json:"door_material_name,omitempty"`

	LineTotalBeforeTax  float64 `json:"line_total_before_tax,omitempty"`
	ComputedCabinetSqft float64 `json:"computed_cabinet_sqft,omitempty"`
	ComputedDoorSqft    float64 `json:"computed_door_sqft,omitempty"`
}

func (l LineItem) GetID() int { return l.ID }

// Dimensions is the payload of the update-dimensions endpoint.
type Dimensions struct {
	WidthMM  int `json:"width_mm"`
	DepthMM  int `json:"depth_mm"`
	HeightMM int `json:"height_mm"`
	Qty      int `json:"qty"`
}

// MaterialChoice is the payload of the update-materials endpoint.
type MaterialChoice struct {
	CabinetMaterial int `json:"cabinet_material"`
	DoorMaterial    int `json:"door_material"`
}
