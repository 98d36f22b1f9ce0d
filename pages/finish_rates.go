package pages

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

// FinishRatesPage is the finish rate screen: the rate table, the import
// flow and bulk updates of the checked rows.
type FinishRatesPage struct {
	*CRUDPage[models.FinishRate]

	Store *stores.FinishRateStore
	Form  *forms.FinishRateForm

	params      api.ListParams
	currentOnly bool
}

func NewFinishRatesPage(c *api.Client, opts Options) *FinishRatesPage {
	opts = opts.withDefaults()
	store := stores.NewFinishRateStore(c, opts.storeOptions()...)
	p := &FinishRatesPage{
		Store: store,
		Form:  forms.NewFinishRateForm(nil, store.Today),
	}

	view := lists.NewView(func(r models.FinishRate) []string {
		return []string{p.materialName(r), r.Notes}
	}).
		Field("material", func(r models.FinishRate) string { return strconv.Itoa(r.Material) }).
		Field("budget_tier", func(r models.FinishRate) string { return string(r.BudgetTier) }).
		Field("active", func(r models.FinishRate) string { return strconv.FormatBool(r.IsActive) }).
		Field("status", func(r models.FinishRate) string { return string(store.Status(r)) }).
		Sorter("material", func(a, b models.FinishRate) int {
			return strings.Compare(p.materialName(a), p.materialName(b))
		}).
		Sorter("unit_rate", func(a, b models.FinishRate) int { return cmp.Compare(a.UnitRate, b.UnitRate) }).
		Sorter("effective_from", func(a, b models.FinishRate) int {
			return a.EffectiveFrom.Compare(b.EffectiveFrom.Time)
		})

	p.CRUDPage = NewCRUDPage(Config[models.FinishRate]{
		Noun:    "Finish rate",
		Plural:  "finish rates",
		Store:   store,
		Form:    p.Form,
		View:    view,
		Load:    p.load,
		Options: opts,
	})
	return p
}

func (p *FinishRatesPage) load(ctx context.Context) error {
	var err error
	if p.currentOnly {
		if err = p.Store.LoadMaterials(ctx); err == nil {
			err = p.Store.FetchCurrent(ctx, p.params)
		}
	} else {
		err = p.Store.LoadAll(ctx, p.params)
	}
	if err != nil {
		return err
	}
	p.Form.SetMaterials(p.Store.Materials())
	return nil
}

func (p *FinishRatesPage) materialName(r models.FinishRate) string {
	if m, ok := p.Store.Material(r.Material); ok {
		return m.Name
	}
	return r.MaterialName
}

// FilterServer narrows the next load by material and budget tier on the
// backend. Zero and "" clear them.
func (p *FinishRatesPage) FilterServer(material int, tier models.BudgetTier) {
	params := api.ListParams{}
	if material > 0 {
		params = params.With("material", strconv.Itoa(material))
	}
	if tier != "" {
		params = params.With("budget_tier", string(tier))
	}
	p.params = params
}

// ShowCurrentOnly switches the next load between every rate and the rates
// that apply today.
func (p *FinishRatesPage) ShowCurrentOnly(on bool) {
	p.currentOnly = on
}

func (p *FinishRatesPage) CurrentOnly() bool { return p.currentOnly }

func (p *FinishRatesPage) Groups() []stores.MaterialGroup {
	return p.Store.GroupByMaterial()
}

func (p *FinishRatesPage) Stats() services.RateStats {
	return p.Store.Stats()
}

// BulkUpdate applies fields to every checked rate.
func (p *FinishRatesPage) BulkUpdate(ctx context.Context, fields map[string]any) (int, error) {
	var updated int
	err := p.BulkAction(func(ids []int) error {
		n, err := p.Store.BulkUpdate(ctx, ids, fields)
		updated = n
		return err
	})
	if err != nil {
		return updated, err
	}
	p.notify.Success(fmt.Sprintf("Updated %s", services.FormatCount(updated, "finish rate")))
	return updated, nil
}

// BulkSetActive activates or deactivates every checked rate.
func (p *FinishRatesPage) BulkSetActive(ctx context.Context, active bool) (int, error) {
	return p.BulkUpdate(ctx, map[string]any{"is_active": active})
}

// Import parses a .csv or .xlsx file and creates its valid rows. Rows that
// fail parsing or are rejected by the backend end up in report.Failed.
func (p *FinishRatesPage) Import(ctx context.Context, r io.Reader, fileName string) (stores.ImportReport, error) {
	parsed, err := services.ParseRateFile(r, fileName, p.Store.Materials(), p.Store.Today())
	if err != nil {
		p.notify.Error(fmt.Sprintf("Import failed: %s", err))
		return stores.ImportReport{}, err
	}

	report, err := p.Store.Import(ctx, parsed)
	if err != nil {
		p.notify.Error(fmt.Sprintf("Import interrupted: %s", errorMessage(err)))
		return report, err
	}

	created := services.FormatCount(len(report.Created), "finish rate")
	if len(report.Failed) == 0 {
		p.notify.Success(fmt.Sprintf("Imported %s", created))
	} else {
		p.notify.Warning(fmt.Sprintf("Imported %s, %s need attention",
			created, services.FormatCount(failedRows(report.Failed), "row")))
	}
	return report, nil
}

func failedRows(errs []services.ValidationError) int {
	rows := make(map[int]struct{}, len(errs))
	for _, e := range errs {
		rows[e.Row] = struct{}{}
	}
	return len(rows)
}

// ImportTemplate is the .xlsx file users fill in for Import.
func (p *FinishRatesPage) ImportTemplate() ([]byte, error) {
	return services.GenerateRateTemplate()
}

// ErrorReport renders the failed rows of an import as .xlsx.
func (p *FinishRatesPage) ErrorReport(report stores.ImportReport) ([]byte, error) {
	return services.GenerateErrorReport(report.Failed)
}
