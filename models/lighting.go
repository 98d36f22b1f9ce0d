package models

// LightingRule prices LED strips and spotlights for a material, optionally
// narrowed to one cabinet type and/or one customer.
// A nil CabinetType applies to every type; a nil Customer is only meaningful
// together with IsGlobal.
type LightingRule struct {
	ID                    int        `json:"id"`
	Name                  string     `json:"name,omitempty"`
	CabinetMaterial       int        `json:"cabinet_material"`
	CabinetType           *int       `json:"cabinet_type"`
	BudgetTier            BudgetTier `json:"budget_tier"`
	IsGlobal              bool       `json:"is_global"`
	Customer              *int       `json:"customer"`
	LEDUnderWallRatePerMM float64    `json:"led_under_wall_rate_per_mm"`
	LEDWorkTopRatePerMM   float64    `json:"led_work_top_rate_per_mm"`
	LEDSkirtingRatePerMM  float64    `json:"led_skirting_rate_per_mm"`
	SpotLightRate         float64    `json:"spot_light_rate"`
	IsActive              bool       `json:"is_active"`
}

func (r LightingRule) GetID() int { return r.ID }

// LightingItem is the lighting cost of one (material, cabinet type) pair in a
// project. All cost fields are computed by the backend from the matched rule.
type LightingItem struct {
	ID               int     `json:"id"`
	Project          int     `json:"project"`
	CabinetMaterial  int     `json:"cabinet_material"`
	CabinetType      int     `json:"cabinet_type"`
	Rule             *int    `json:"rule"`
	LEDUnderWallCost float64 `json:"led_under_wall_cost"`
	LEDWorkTopCost   float64 `json:"led_work_top_cost"`
	LEDSkirtingCost  float64 `json:"led_skirting_cost"`
	SpotLightsCost   float64 `json:"spot_lights_cost"`
	SpotLightCount   int     `json:"spot_light_count"`
	TotalCost        float64 `json:"total_cost"`
	IsActive         bool    `json:"is_active"`
}

func (i LightingItem) GetID() int { return i.ID }

// IntPtr is a helper for the optional foreign keys above.
func IntPtr(v int) *int {
	return &v
}
