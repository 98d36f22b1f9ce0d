package models

// MaterialRole decides which dropdowns a material may appear in.
type MaterialRole string

const (
	RoleBoth    MaterialRole = "BOTH"
	RoleCabinet MaterialRole = "CABINET"
	RoleDoor    MaterialRole = "DOOR"
	RoleTop     MaterialRole = "TOP"
)

// BudgetTier is the pricing band a rate or project belongs to.
type BudgetTier string

const (
	TierLuxury  BudgetTier = "LUXURY"
	TierEconomy BudgetTier = "ECONOMY"
)

// CurrencyINR is the only currency the backend prices in.
const CurrencyINR = "INR"

type Material struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Role     MaterialRole `json:"role"`
	IsActive bool         `json:"is_active"`
}

func (m Material) GetID() int { return m.ID }

// UsableForCabinet reports whether the material can be chosen as a carcass material.
func (m Material) UsableForCabinet() bool {
	return m.Role == RoleCabinet || m.Role == RoleBoth
}

// UsableForDoor reports whether the material can be chosen as a shutter material.
func (m Material) UsableForDoor() bool {
	return m.Role == RoleDoor || m.Role == RoleBoth
}

// UsableForTop reports whether the material can be chosen for a worktop.
func (m Material) UsableForTop() bool {
	return m.Role == RoleTop || m.Role == RoleBoth
}

// FinishRate is the per-sqft rate of a material in a budget tier for a date window.
// EffectiveTo is nil for an open-ended rate.
type FinishRate struct {
	ID            int        `json:"id,omitempty"`
	Material      int        `json:"material"`
	MaterialName  string     `json:"material_name,omitempty"`
	BudgetTier    BudgetTier `json:"budget_tier"`
	UnitRate      float64    `json:"unit_rate"`
	Currency      string     `json:"currency"`
	EffectiveFrom Date       `json:"effective_from"`
	EffectiveTo   *Date      `json:"effective_to"`
	IsActive      bool       `json:"is_active"`
	Notes         string     `json:"notes,omitempty"`
}

func (r FinishRate) GetID() int { return r.ID }

func (r FinishRate) Active() bool { return r.IsActive }

func (r FinishRate) WithActive(active bool) FinishRate {
	r.IsActive = active
	return r
}
