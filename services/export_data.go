package services

import (
	"fmt"

	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// QuoteSection groups quotation rows under a heading ("Cabinets", "Accessories", ...).
type QuoteSection struct {
	Title string
	Lines []QuoteLine
}

// QuotationData holds everything the quotation PDF and workbook render.
type QuotationData struct {
	Template        models.QuotationTemplate
	Number          string
	ProjectName     string
	CustomerName    string
	ReferenceNumber string
	Date            string
	Sections        []QuoteSection
	Totals          QuoteTotals
	LineItems       []models.LineItem
}

// QuotationInput is the raw data a quotation is built from.
type QuotationInput struct {
	Template    models.QuotationTemplate
	Project     models.Project
	LineItems   []models.LineItem
	Accessories []models.ProjectAccessory
	Lighting    LightingSummary
	Date        models.Date
	Sequence    int
	// CompanyName is used when the template has none.
	CompanyName string
}

// BuildQuotationData prices every line item, accessory and the lighting
// total at the standard GST rate and aggregates the result. Accessories are
// left out of both rows and totals when the template hides them.
func BuildQuotationData(in QuotationInput) QuotationData {
	tpl := in.Template
	if tpl.CompanyName == "" {
		tpl.CompanyName = in.CompanyName
	}

	data := QuotationData{
		Template:        tpl,
		Number:          QuotationNumber(in.Project.ReferenceNumber, in.Project.ID, in.Date.Time, in.Sequence),
		ProjectName:     in.Project.Name,
		CustomerName:    in.Project.CustomerName,
		ReferenceNumber: in.Project.ReferenceNumber,
		Date:            FormatDate(in.Date),
		LineItems:       in.LineItems,
	}

	var all []QuoteLine

	if len(in.LineItems) > 0 {
		section := QuoteSection{Title: "Cabinets"}
		for _, it := range in.LineItems {
			line := CalcQuoteLine(lineItemLabel(it), it.Qty, it.LineTotalBeforeTax, GSTPercent)
			section.Lines = append(section.Lines, line)
		}
		data.Sections = append(data.Sections, section)
		all = append(all, section.Lines...)
	}

	if tpl.ShowAccessories && len(in.Accessories) > 0 {
		section := QuoteSection{Title: "Accessories"}
		for _, acc := range in.Accessories {
			total := acc.TotalPrice
			if total == 0 {
				total = AccessoryLineTotal(acc.UnitPrice, acc.Qty)
			}
			section.Lines = append(section.Lines, CalcQuoteLine(accessoryLabel(acc), acc.Qty, total, GSTPercent))
		}
		data.Sections = append(data.Sections, section)
		all = append(all, section.Lines...)
	}

	if in.Lighting.GrandTotal > 0 {
		label := fmt.Sprintf("LED profiles and %d spot lights", in.Lighting.SpotLightCount)
		section := QuoteSection{
			Title: "Lighting",
			Lines: []QuoteLine{CalcQuoteLine(label, 1, in.Lighting.GrandTotal, GSTPercent)},
		}
		data.Sections = append(data.Sections, section)
		all = append(all, section.Lines...)
	}

	data.Totals = CalcQuoteTotals(all)
	return data
}

func lineItemLabel(it models.LineItem) string {
	name := it.CabinetTypeName
	if name == "" {
		name = fmt.Sprintf("Cabinet type #%d", it.CabinetType)
	}
	label := fmt.Sprintf("%s %dx%dx%d mm", name, it.WidthMM, it.DepthMM, it.HeightMM)
	if it.CabinetMaterialName != "" || it.DoorMaterialName != "" {
		label += fmt.Sprintf(" (%s / %s)", it.CabinetMaterialName, it.DoorMaterialName)
	}
	return label
}

func accessoryLabel(acc models.ProjectAccessory) string {
	switch {
	case acc.ProductName == "":
		return fmt.Sprintf("Product variant #%d", acc.ProductVariant)
	case acc.VariantName == "":
		return acc.ProductName
	default:
		return acc.ProductName + " - " + acc.VariantName
	}
}
