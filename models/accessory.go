package models

type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (b Brand) GetID() int { return b.ID }

type ProductCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c ProductCategory) GetID() int { return c.ID }

// ProductVariant is a purchasable SKU (colour/size/price combination).
type ProductVariant struct {
	ID           int     `json:"id"`
	ProductName  string  `json:"product_name"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku,omitempty"`
	Brand        int     `json:"brand"`
	BrandName    string  `json:"brand_name,omitempty"`
	Category     int     `json:"category"`
	CompanyPrice float64 `json:"company_price"`
	MRP          float64 `json:"mrp,omitempty"`
	IsActive     bool    `json:"is_active"`
}

func (v ProductVariant) GetID() int { return v.ID }

// DisplayName joins product and variant labels for dropdowns.
func (v ProductVariant) DisplayName() string {
	if v.Name == "" {
		return v.ProductName
	}
	return v.ProductName + " - " + v.Name
}

// ProjectAccessory attaches a product variant to a line item.
// TotalPrice is computed by the backend; the client only previews it.
type ProjectAccessory struct {
	ID                int     `json:"id,omitempty"`
	LineItem          int     `json:"line_item"`
	ProductVariant    int     `json:"product_variant"`
	Qty               int     `json:"qty"`
	UnitPrice         float64 `json:"unit_price"`
	InstallationNotes string  `json:"installation_notes"`
	TotalPrice        float64 `json:"total_price,omitempty"`
	ProductName       string  `json:"product_name,omitempty"`
	VariantName       string  `json:"variant_name,omitempty"`
}

func (a ProjectAccessory) GetID() int { return a.ID }
