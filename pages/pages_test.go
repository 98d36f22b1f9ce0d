package pages

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
	"github.com/Thaquidheen/hoch-frontend-sub002/testhelpers"
)

const (
	cabinetTypesPath = "/api/pricing/cabinet-types/"
	categoriesPath   = "/api/pricing/cabinet-categories/"
	finishRatesPath  = "/api/pricing/finish-rates/"
	materialsPath    = "/api/pricing/materials/"
	lineItemsPath    = "/api/pricing/project-line-items/"
	accessoriesPath  = "/api/pricing/project-line-item-accessories/"
	lightingPath     = "/api/pricing/project-lighting-items/"
	rulesPath        = "/api/pricing/lighting-rules/"
	projectsPath     = "/api/pricing/projects/"
	templatesPath    = "/api/pricing/quotation-templates/"
)

func march1() models.Date { return models.MustParseDate("2025-03-01") }

func testOptions() Options {
	logger := testhelpers.DiscardLogger()
	return Options{
		Logger: logger,
		Notify: NewNotifications(logger),
		Today:  march1,
	}
}

func lastNote(t *testing.T, n *Notifications) Notification {
	t.Helper()
	note, ok := n.Latest()
	require.True(t, ok, "expected a notification")
	return note
}

func seedCabinetTypes(t *testing.T, b *testhelpers.Backend) {
	t.Helper()
	b.Seed(t, categoriesPath,
		models.Category{ID: 1, Name: "Base Units"},
		models.Category{ID: 2, Name: "Wall Units"},
	)
	b.Seed(t, cabinetTypesPath,
		models.CabinetType{Name: "Base 600", Category: 1, IsActive: true},
		models.CabinetType{Name: "Wall 900", Category: 2, IsActive: true},
	)
}

func TestCRUDPageLoadFailureAndRetry(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedCabinetTypes(t, b)
	b.Fail(http.MethodGet, cabinetTypesPath, http.StatusInternalServerError, `{"detail":"database unavailable"}`)

	p := NewCabinetTypesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()

	require.Error(t, p.Load(ctx))
	require.Error(t, p.LoadErr())
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelError, note.Level)
	assert.True(t, strings.HasPrefix(note.Message, "Failed to load cabinet types: "), note.Message)

	require.NoError(t, p.Retry(ctx))
	assert.NoError(t, p.LoadErr())
	assert.Equal(t, 2, p.Visible().Total)
	require.NoError(t, p.Retry(ctx), "nothing to retry")
}

func TestCRUDPageCreate(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedCabinetTypes(t, b)

	p := NewCabinetTypesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	_, err := p.Submit(ctx)
	require.ErrorIs(t, err, ErrFormClosed)

	require.NoError(t, p.OpenCreate())
	_, err = p.Submit(ctx)
	require.ErrorIs(t, err, forms.ErrInvalid)
	assert.Equal(t, msgFixErrors, lastNote(t, p.Notifications()).Message)
	assert.Equal(t, "Name is required", p.FormErrors()["name"])
	assert.Zero(t, b.RequestCount(http.MethodPost, cabinetTypesPath))
	assert.Equal(t, FormCreating, p.FormState().Status(), "the form stays open")

	require.NoError(t, p.Form.Set("name", "Tall 2100"))
	require.NoError(t, p.OpenCreate(), "reopening keeps the draft")
	assert.Equal(t, "Tall 2100", p.Form.Draft.Name)
	require.NoError(t, p.Form.Set("category", "1"))

	created, err := p.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)

	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelSuccess, note.Level)
	assert.Equal(t, "Cabinet type created successfully", note.Message)
	assert.False(t, p.FormState().IsOpen())
	assert.Len(t, b.Records(cabinetTypesPath), 3)
	assert.Equal(t, 3, p.Visible().Total)
}

func TestCRUDPageServerValidation(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedCabinetTypes(t, b)
	b.Fail(http.MethodPost, cabinetTypesPath, http.StatusBadRequest,
		`{"name":["cabinet type with this name already exists."]}`)

	p := NewCabinetTypesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	require.NoError(t, p.OpenCreate())
	require.NoError(t, p.Form.Set("name", "Base 600"))
	require.NoError(t, p.Form.Set("category", "1"))

	_, err := p.Submit(ctx)
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	assert.Equal(t, "cabinet type with this name already exists.", p.FormErrors()["name"])
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelWarning, note.Level)
	assert.Equal(t, msgFixErrors, note.Message)
	assert.True(t, p.FormState().IsOpen())
}

func TestCRUDPageEditDeleteToggle(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedCabinetTypes(t, b)
	b.Fail(http.MethodDelete, cabinetTypesPath+"2/", http.StatusConflict, `{"detail":"in use"}`)

	p := NewCabinetTypesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	require.ErrorIs(t, p.OpenEdit(42), ErrNotFound)

	require.NoError(t, p.OpenEdit(1))
	assert.Equal(t, "Base 600", p.Form.Draft.Name)
	require.ErrorIs(t, p.OpenCreate(), ErrInvalidTransition)
	require.NoError(t, p.Form.Set("name", "Base 600 Deep"))

	updated, err := p.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Base 600 Deep", updated.Name)
	assert.Equal(t, "Cabinet type updated successfully", lastNote(t, p.Notifications()).Message)
	assert.False(t, p.FormState().IsOpen())

	toggled, err := p.ToggleStatus(ctx, 1)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.Equal(t, "Cabinet type deactivated", lastNote(t, p.Notifications()).Message)

	err = p.Delete(ctx, 2)
	require.Error(t, err)
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelError, note.Level)
	assert.Equal(t, "Cabinet type is in use and cannot be deleted", note.Message)

	require.NoError(t, p.OpenEdit(1))
	p.Selection().Select(1, 2)
	require.NoError(t, p.Delete(ctx, 1))
	assert.False(t, p.FormState().IsOpen(), "deleting the edited record closes the form")
	assert.Equal(t, []int{2}, p.Selection().IDs())
	assert.Equal(t, "Cabinet type deleted successfully", lastNote(t, p.Notifications()).Message)
}

func TestCabinetTypesPageView(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedCabinetTypes(t, b)
	b.Seed(t, cabinetTypesPath, models.CabinetType{Name: "Sink Base", Category: 1, Description: "Under sink"})

	p := NewCabinetTypesPage(api.NewClient(b.URL()), testOptions())
	require.NoError(t, p.Load(context.Background()))

	p.View().SetSearch("")
	res := p.Visible()
	assert.Equal(t, 3, res.Filtered)
	assert.Equal(t, "Base 600", res.Items[0].Name, "sorted by name")

	p.View().SetSearch("wall units")
	assert.Equal(t, 1, p.Visible().Filtered, "search covers the category name")
	p.View().SetSearch("")

	p.FilterCategory(1)
	groups := p.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "Base Units", groups[0].Name)
	assert.Len(t, groups[0].Types, 2)

	p.FilterCategory(0)
	assert.Len(t, p.Groups(), 2)
}

func TestCabinetTypesPageServerFilter(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedCabinetTypes(t, b)

	p := NewCabinetTypesPage(api.NewClient(b.URL()), testOptions())
	p.FilterServer(2, " ")
	require.NoError(t, p.Load(context.Background()))

	res := p.Visible()
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Wall 900", res.Items[0].Name)
}

func TestCRUDPageBulkActionNeedsSelection(t *testing.T) {
	b := testhelpers.NewBackend(t)
	p := NewFinishRatesPage(api.NewClient(b.URL()), testOptions())

	_, err := p.BulkSetActive(context.Background(), false)
	require.ErrorIs(t, err, lists.ErrNothingSelected)
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelInfo, note.Level)
	assert.Zero(t, b.RequestCount(http.MethodPost, finishRatesPath))
}

func seedRates(t *testing.T, b *testhelpers.Backend) {
	t.Helper()
	b.Seed(t, materialsPath,
		models.Material{ID: 3, Name: "Marine Ply", Role: models.RoleBoth, IsActive: true},
		models.Material{ID: 5, Name: "Acrylic", Role: models.RoleDoor, IsActive: true},
	)
	b.Seed(t, finishRatesPath,
		models.FinishRate{Material: 3, BudgetTier: models.TierLuxury, UnitRate: 1450, Currency: "INR",
			EffectiveFrom: models.MustParseDate("2025-01-01"), IsActive: true},
		models.FinishRate{Material: 5, BudgetTier: models.TierLuxury, UnitRate: 2100, Currency: "INR",
			EffectiveFrom: models.MustParseDate("2025-01-01"), IsActive: true},
	)
}

func TestFinishRatesPageBulkUpdate(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedRates(t, b)
	b.Handle(http.MethodPost, finishRatesPath+"bulk-update/", func(w http.ResponseWriter, r *http.Request) {
		testhelpers.WriteJSON(w, http.StatusOK, map[string]any{
			"updated": 2,
			"rates": []models.FinishRate{
				{ID: 1, Material: 3, BudgetTier: models.TierLuxury, UnitRate: 1450, EffectiveFrom: models.MustParseDate("2025-01-01")},
				{ID: 2, Material: 5, BudgetTier: models.TierLuxury, UnitRate: 2100, EffectiveFrom: models.MustParseDate("2025-01-01")},
			},
		})
	})

	p := NewFinishRatesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	p.SelectAllVisible()
	assert.Equal(t, 2, p.Selection().Count())

	n, err := p.BulkSetActive(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "Updated 2 finish rates", lastNote(t, p.Notifications()).Message)
	assert.Zero(t, p.Selection().Count(), "selection clears after a bulk action")
	assert.Equal(t, 0, p.Stats().Active)
}

func TestFinishRatesPageImport(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedRates(t, b)

	p := NewFinishRatesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	csv := "Material,Budget Tier,Unit Rate,Effective From\n" +
		"Marine Ply,ECONOMY,900,2025-03-01\n" +
		"Teak,ECONOMY,900,2025-03-01\n"
	report, err := p.Import(ctx, strings.NewReader(csv), "rates.csv")
	require.NoError(t, err)

	require.Len(t, report.Created, 1)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 3, report.Failed[0].Row)

	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelWarning, note.Level)
	assert.Equal(t, "Imported 1 finish rate, 1 row need attention", note.Message)
	assert.Len(t, b.Records(finishRatesPath), 3)

	data, err := p.ErrorReport(report)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestFinishRatesPageImportRejectsFile(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedRates(t, b)

	p := NewFinishRatesPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	_, err := p.Import(ctx, strings.NewReader("Material\n"), "rates.csv")
	require.Error(t, err)
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelError, note.Level)
	assert.True(t, strings.HasPrefix(note.Message, "Import failed: "), note.Message)
	assert.Zero(t, b.RequestCount(http.MethodPost, finishRatesPath))
}

func TestLineItemsPageSaveWithoutPricing(t *testing.T) {
	b := testhelpers.NewBackend(t)
	b.Seed(t, materialsPath, models.Material{ID: 3, Name: "Marine Ply", Role: models.RoleBoth, IsActive: true})
	b.Seed(t, cabinetTypesPath, models.CabinetType{ID: 2, Name: "Base 600", Category: 1, IsActive: true})
	b.Seed(t, lineItemsPath)
	b.Fail(http.MethodPost, lineItemsPath+"1/compute/", http.StatusBadRequest, `{"detail":"No finish rate for material"}`)

	p := NewLineItemsPage(api.NewClient(b.URL()), 7, testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	assert.Len(t, p.Materials(), 1)
	assert.Equal(t, []services.Option{{Value: "2", Label: "Base 600"}}, p.CabinetTypeOptions())

	require.NoError(t, p.OpenCreate())
	for field, value := range map[string]string{
		"cabinet_type":     "2",
		"cabinet_material": "3",
		"door_material":    "3",
		"width_mm":         "600",
		"depth_mm":         "560",
		"height_mm":        "720",
	} {
		require.NoError(t, p.Form.Set(field, value))
	}

	saved, err := p.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, saved.ID)

	notes := p.Notifications().Items()
	require.Len(t, notes, 2)
	assert.Equal(t, LevelWarning, notes[0].Level)
	assert.Equal(t, "Line item saved but could not be priced: No finish rate for material", notes[0].Message)
	assert.Equal(t, "Line item created successfully", notes[1].Message)
	assert.Equal(t, 1, p.Totals().Uncomputed)
}

func TestLineItemsPageUpdateDimensionsChecksInput(t *testing.T) {
	b := testhelpers.NewBackend(t)
	p := NewLineItemsPage(api.NewClient(b.URL()), 7, testOptions())

	_, err := p.UpdateDimensions(context.Background(), 1, models.Dimensions{WidthMM: 600, DepthMM: 0, HeightMM: 720, Qty: 1})
	require.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Equal(t, LevelWarning, lastNote(t, p.Notifications()).Level)
	assert.Empty(t, b.Requests())
}

func TestAccessoriesPage(t *testing.T) {
	b := testhelpers.NewBackend(t)
	b.Seed(t, "/api/catalog/brands/", models.Brand{ID: 1, Name: "Hettich"})
	b.Seed(t, "/api/catalog/categories/", models.ProductCategory{ID: 1, Name: "Drawer systems"})
	b.Seed(t, accessoriesPath)
	b.Handle(http.MethodGet, accessoriesPath+"available_products/", func(w http.ResponseWriter, r *http.Request) {
		testhelpers.WriteJSON(w, http.StatusOK, []models.ProductVariant{
			{ID: 11, ProductName: "Tandem Box", Name: "500mm", CompanyPrice: 285, IsActive: true},
		})
	})

	p := NewAccessoriesPage(api.NewClient(b.URL()), 4, testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	products, err := p.SearchProducts(ctx, " tandem ", 0, 1)
	require.NoError(t, err)
	require.Len(t, products, 1)
	reqs := b.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, "tandem", last.Query.Get("search"))
	assert.Equal(t, "1", last.Query.Get("brand"))

	require.NoError(t, p.OpenCreate())
	require.ErrorIs(t, p.SelectVariant(99), ErrNotFound)
	require.NoError(t, p.SelectVariant(11))
	assert.Equal(t, "285", p.Form.Draft.UnitPrice)
	require.NoError(t, p.Form.Set("qty", "2"))

	preview := p.Preview()
	assert.Equal(t, 570.0, preview.Subtotal)
	assert.Equal(t, 672.6, preview.Total)

	created, err := p.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, created.LineItem)
	assert.Equal(t, "Accessory created successfully", lastNote(t, p.Notifications()).Message)
	assert.Equal(t, 1, p.Totals().Count)
}

func TestLightingPageAmbiguousRule(t *testing.T) {
	b := testhelpers.NewBackend(t)
	b.Seed(t, projectsPath, models.Project{ID: 1, Name: "Villa", Customer: 42, BudgetTier: models.TierLuxury})
	b.Seed(t, rulesPath,
		models.LightingRule{ID: 1, Name: "Standard LED", CabinetMaterial: 3, BudgetTier: models.TierLuxury, IsGlobal: true, IsActive: true},
		models.LightingRule{ID: 2, Name: "Budget LED", CabinetMaterial: 3, BudgetTier: models.TierLuxury, IsGlobal: true, IsActive: true},
	)
	b.Seed(t, lightingPath,
		models.LightingItem{Project: 1, CabinetMaterial: 3, CabinetType: 2, TotalCost: 2000, SpotLightCount: 2, IsActive: true},
	)

	p := NewLightingPage(api.NewClient(b.URL()), 1, testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	m := p.Rule(3, 2)
	require.True(t, m.Found)
	assert.True(t, m.Ambiguous)
	assert.Equal(t, 1, m.Rule.ID, "the first rule wins a tie")
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelWarning, note.Level)
	assert.Equal(t, `2 lighting rules match; using "Standard LED"`, note.Message)

	assert.Equal(t, 2000.0, p.Summary().GrandTotal)

	loads := b.RequestCount(http.MethodGet, lightingPath)
	require.NoError(t, p.Refresh(ctx))
	assert.Equal(t, loads, b.RequestCount(http.MethodGet, lightingPath), "fresh data is not refetched")
}

func seedQuotation(t *testing.T, b *testhelpers.Backend) {
	t.Helper()
	b.Seed(t, templatesPath, models.QuotationTemplate{
		Name: "Standard", IsActive: true, IsDefault: true, ShowAccessories: true, ShowUnitPrices: true,
		AccentColor: "#1F4E79", Terms: "50% advance\nBalance on delivery",
	})
	b.Seed(t, projectsPath, models.Project{ID: 1, Name: "Villa", CustomerName: "Anita", ReferenceNumber: "VIL-01"})
	b.Seed(t, lineItemsPath, models.LineItem{
		Project: 1, CabinetType: 2, CabinetTypeName: "Base 600", WidthMM: 600, DepthMM: 560, HeightMM: 720,
		Qty: 1, Scope: models.ScopeOpen, LineTotalBeforeTax: 10000,
	})
	b.Seed(t, accessoriesPath, models.ProjectAccessory{LineItem: 1, ProductVariant: 11, ProductName: "Tandem Box", Qty: 2, UnitPrice: 285, TotalPrice: 570})
	b.Seed(t, lightingPath,
		models.LightingItem{Project: 1, TotalCost: 2000, SpotLightCount: 2, IsActive: true},
		models.LightingItem{Project: 2, TotalCost: 9000, IsActive: true},
	)
}

func TestQuotationPageExportPDF(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedQuotation(t, b)

	opts := testOptions()
	opts.CompanyName = "Hoch Interiors"
	p := NewQuotationPage(api.NewClient(b.URL()), opts)
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	file, err := p.Export(ctx, ExportRequest{Project: 1, Format: ExportPDF})
	require.NoError(t, err)

	assert.Equal(t, "quotation-hoch-qt-vil-01-24-25-001.pdf", file.Name)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF-")))
	assert.Equal(t, "Hoch Interiors", file.Quote.Template.CompanyName)
	assert.Len(t, file.Quote.Sections, 3)
	assert.Equal(t, 12570.0, file.Quote.Totals.TotalBeforeTax)
	assert.Equal(t, 14833.0, file.Quote.Totals.GrandTotal)
	assert.Equal(t, "Quotation HOCH-QT-VIL-01-24-25-001 exported", lastNote(t, p.Notifications()).Message)
}

func TestQuotationPageExportExcel(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedQuotation(t, b)

	p := NewQuotationPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	file, err := p.Export(ctx, ExportRequest{Project: 1, Template: 1, Format: ExportExcel, Sequence: 2})
	require.NoError(t, err)
	assert.Equal(t, "line-items-hoch-qt-vil-01-24-25-002.xlsx", file.Name)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("PK")), "xlsx is a zip archive")
}

func TestQuotationPageExportNeedsTemplate(t *testing.T) {
	b := testhelpers.NewBackend(t)
	b.Seed(t, templatesPath)

	p := NewQuotationPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	_, err := p.Export(ctx, ExportRequest{Project: 1})
	require.ErrorIs(t, err, ErrNoTemplate)
	assert.Equal(t, LevelError, lastNote(t, p.Notifications()).Level)
	assert.Zero(t, b.RequestCount(http.MethodGet, projectsPath))
}

func TestQuotationPageUploadLogoChecksFile(t *testing.T) {
	b := testhelpers.NewBackend(t)
	seedQuotation(t, b)

	p := NewQuotationPage(api.NewClient(b.URL()), testOptions())
	ctx := context.Background()
	require.NoError(t, p.Load(ctx))

	err := p.UploadLogo(ctx, 1, "logo.txt", []byte("just some text"))
	require.Error(t, err)
	note := lastNote(t, p.Notifications())
	assert.Equal(t, LevelWarning, note.Level)
	assert.Equal(t, "Logo must be a PNG, JPEG or SVG image", note.Message)
	assert.Zero(t, b.RequestCount(http.MethodPost, templatesPath))
}
