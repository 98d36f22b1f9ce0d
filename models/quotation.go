package models

// QuotationTemplate customises the quotation PDF: company header, notes,
// terms and which sections are printed.
type QuotationTemplate struct {
	ID               int    `json:"id,omitempty"`
	Name             string `json:"name"`
	CompanyName      string `json:"company_name"`
	CompanyAddress   string `json:"company_address"`
	CompanyEmail     string `json:"company_email"`
	CompanyPhone     string `json:"company_phone"`
	GSTIN            string `json:"gstin"`
	HeaderNote       string `json:"header_note"`
	FooterNote       string `json:"footer_note"`
	Terms            string `json:"terms"`
	AccentColor      string `json:"accent_color"`
	ShowUnitPrices   bool   `json:"show_unit_prices"`
	ShowTaxBreakdown bool   `json:"show_tax_breakdown"`
	ShowAccessories  bool   `json:"show_accessories"`
	LogoURL          string `json:"logo_url,omitempty"`
	IsDefault        bool   `json:"is_default"`
	IsActive         bool   `json:"is_active"`
}

func (q QuotationTemplate) GetID() int { return q.ID }

func (q QuotationTemplate) Active() bool { return q.IsActive }

func (q QuotationTemplate) WithActive(active bool) QuotationTemplate {
	q.IsActive = active
	return q
}
