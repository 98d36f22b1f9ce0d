package services

import (
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

func sampleQuotationInput() QuotationInput {
	return QuotationInput{
		Template: models.QuotationTemplate{
			Name:             "Standard",
			CompanyName:      "Hoch Kitchens",
			CompanyAddress:   "12 MG Road, Kochi",
			CompanyEmail:     "sales@hoch.in",
			GSTIN:            "32AAPFU0939F1ZV",
			HeaderNote:       "Prices valid for 30 days",
			Terms:            "50% advance\nBalance before installation",
			AccentColor:      "#0F766E",
			ShowUnitPrices:   true,
			ShowTaxBreakdown: true,
			ShowAccessories:  true,
		},
		Project: models.Project{ID: 9, Name: "Villa Kitchen", CustomerName: "R. Menon", ReferenceNumber: "KIT-204"},
		LineItems: []models.LineItem{
			{ID: 1, CabinetTypeName: "Base Unit", CabinetMaterialName: "BWP Ply", DoorMaterialName: "Acrylic", WidthMM: 600, DepthMM: 560, HeightMM: 720, Qty: 2, Scope: models.ScopeOpen, ComputedCabinetSqft: 18.2, ComputedDoorSqft: 9.3, LineTotalBeforeTax: 24000},
			{ID: 2, CabinetTypeName: "=Wall Unit", WidthMM: 900, DepthMM: 300, HeightMM: 720, Qty: 1, Scope: models.ScopeWorking, LineTotalBeforeTax: 16000},
		},
		Accessories: []models.ProjectAccessory{
			{ID: 1, ProductName: "Tandem Box", VariantName: "500mm", Qty: 2, UnitPrice: 285, TotalPrice: 570},
			{ID: 2, ProductName: "Hinge", Qty: 4, UnitPrice: 100},
		},
		Lighting:    LightingSummary{GrandTotal: 4000, SpotLightCount: 4},
		Date:        models.MustParseDate("2025-05-10"),
		Sequence:    2,
		CompanyName: "Fallback Co",
	}
}
