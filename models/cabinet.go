package models

// Category groups cabinet types (base units, wall units, tall units...).
// It is reference data and never edited from the admin.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c Category) GetID() int { return c.ID }

// CabinetType is one kind of cabinet that line items can reference.
type CabinetType struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"name"`
	Category     int    `json:"category"`
	CategoryName string `json:"category_name,omitempty"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
	Notes        string `json:"notes"`
}

func (c CabinetType) GetID() int { return c.ID }

func (c CabinetType) Active() bool { return c.IsActive }

func (c CabinetType) WithActive(active bool) CabinetType {
	c.IsActive = active
	return c
}
