package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

// ExportFormat selects the file Export renders.
type ExportFormat string

const (
	ExportPDF   ExportFormat = "pdf"
	ExportExcel ExportFormat = "xlsx"
)

// ErrNoTemplate is returned by Export when no active template exists.
var ErrNoTemplate = errors.New("no active quotation template")

// accessoryFetchLimit caps concurrent accessory requests during export.
const accessoryFetchLimit = 4

// ExportFile is a rendered quotation.
type ExportFile struct {
	Name string
	Data []byte
	Quote services.QuotationData
}

// ExportRequest says what to export.
type ExportRequest struct {
	Project int
	// Template is the template id; 0 uses the default template.
	Template int
	Format   ExportFormat
	// Sequence numbers quotations of the same project and fiscal year.
	Sequence int
}

// templateForm lets the template form, which also uploads a logo, drive a
// CRUDPage.
type templateForm struct {
	*forms.QuotationTemplateForm
	upload forms.LogoUploadFunc
}

func (f templateForm) Submit(ctx context.Context, save forms.SaveFunc[models.QuotationTemplate]) (models.QuotationTemplate, error) {
	return f.QuotationTemplateForm.Submit(ctx, save, f.upload)
}

// QuotationPage is the PDF customization screen plus the quotation export.
type QuotationPage struct {
	*CRUDPage[models.QuotationTemplate]

	Store *stores.QuotationTemplateStore
	Form  *forms.QuotationTemplateForm

	projects    *api.Resource[models.Project]
	lineItems   *api.LineItems
	accessories *api.Accessories
	lighting    *api.Resource[models.LightingItem]
	today       func() models.Date
	companyName string
}

func NewQuotationPage(c *api.Client, opts Options) *QuotationPage {
	opts = opts.withDefaults()
	p := &QuotationPage{
		Store:       stores.NewQuotationTemplateStore(c, opts.storeOptions()...),
		Form:        forms.NewQuotationTemplateForm(),
		projects:    api.NewProjects(c),
		lineItems:   api.NewLineItems(c),
		accessories: api.NewAccessories(c),
		lighting:    api.NewLightingItems(c),
		today:       opts.Today,
		companyName: opts.CompanyName,
	}

	view := lists.NewView(func(t models.QuotationTemplate) []string {
		return []string{t.Name, t.CompanyName}
	}).
		Field("active", func(t models.QuotationTemplate) string { return strconv.FormatBool(t.IsActive) }).
		Sorter("name", func(a, b models.QuotationTemplate) int { return strings.Compare(a.Name, b.Name) })

	p.CRUDPage = NewCRUDPage(Config[models.QuotationTemplate]{
		Noun:    "Quotation template",
		Plural:  "quotation templates",
		Store:   p.Store,
		Form:    templateForm{QuotationTemplateForm: p.Form, upload: p.Store.UploadLogo},
		View:    view,
		Load:    p.Store.Refresh,
		Options: opts,
	})
	return p
}

// SetDefault makes template id the one exports use by default.
func (p *QuotationPage) SetDefault(ctx context.Context, id int) error {
	t, err := p.Store.SetDefault(ctx, id)
	if err != nil {
		p.notify.Error(errorMessage(err))
		return err
	}
	p.notify.Success(fmt.Sprintf("%q is now the default template", t.Name))
	return nil
}

// UploadLogo replaces the logo of a saved template.
func (p *QuotationPage) UploadLogo(ctx context.Context, id int, filename string, data []byte) error {
	if _, err := forms.CheckLogo(data); err != nil {
		p.notify.Warning(err.Error())
		return err
	}
	if _, err := p.Store.UploadLogo(ctx, id, filename, data); err != nil {
		p.notify.Error(errorMessage(err))
		return err
	}
	p.notify.Success("Logo uploaded")
	return nil
}

func (p *QuotationPage) template(id int) (models.QuotationTemplate, error) {
	if id > 0 {
		t, ok := p.Store.Find(id)
		if !ok {
			return t, fmt.Errorf("quotation template %d: %w", id, ErrNotFound)
		}
		return t, nil
	}
	t, ok := p.Store.Default()
	if !ok {
		return t, ErrNoTemplate
	}
	return t, nil
}

// Export gathers the project, its line items, their accessories and the
// lighting items, prices them and renders the requested file. Templates
// must be loaded first.
func (p *QuotationPage) Export(ctx context.Context, req ExportRequest) (ExportFile, error) {
	tpl, err := p.template(req.Template)
	if err != nil {
		p.notify.Error(fmt.Sprintf("Export failed: %s", err))
		return ExportFile{}, err
	}

	in, err := p.gather(ctx, req.Project)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.notify.Error(fmt.Sprintf("Export failed: %s", errorMessage(err)))
		}
		return ExportFile{}, err
	}
	in.Template = tpl
	in.Date = p.today()
	in.Sequence = req.Sequence
	in.CompanyName = p.companyName

	quote := services.BuildQuotationData(in)
	file := ExportFile{Quote: quote}
	switch req.Format {
	case ExportExcel:
		file.Name = fmt.Sprintf("line-items-%s.xlsx", fileSlug(quote.Number))
		file.Data, err = services.GenerateLineItemsExcel(quote)
	case ExportPDF, "":
		file.Name = fmt.Sprintf("quotation-%s.pdf", fileSlug(quote.Number))
		file.Data, err = services.GenerateQuotationPDF(quote)
	default:
		err = fmt.Errorf("unsupported export format %q", req.Format)
	}
	if err != nil {
		p.notify.Error(fmt.Sprintf("Export failed: %s", err))
		return ExportFile{}, err
	}

	p.logger.Info("quotation exported", "project", req.Project, "number", quote.Number,
		"format", req.Format, "bytes", len(file.Data))
	p.notify.Success(fmt.Sprintf("Quotation %s exported", quote.Number))
	return file, nil
}

func (p *QuotationPage) gather(ctx context.Context, project int) (services.QuotationInput, error) {
	var in services.QuotationInput
	byProject := api.ListParams{}.With("project", strconv.Itoa(project))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		proj, err := p.projects.Get(gctx, project)
		if err != nil {
			return fmt.Errorf("load project: %w", err)
		}
		in.Project = proj
		return nil
	})
	g.Go(func() error {
		items, err := p.lineItems.ListAll(gctx, byProject)
		if err != nil {
			return fmt.Errorf("load line items: %w", err)
		}
		in.LineItems = items
		return nil
	})
	g.Go(func() error {
		items, err := p.lighting.ListAll(gctx, byProject)
		if err != nil {
			return fmt.Errorf("load lighting items: %w", err)
		}
		in.Lighting = services.AggregateLightingCosts(items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return in, err
	}

	accessories, err := p.fetchAccessories(ctx, in.LineItems)
	if err != nil {
		return in, err
	}
	in.Accessories = accessories
	return in, nil
}

// fetchAccessories loads the accessories of every line item, keeping line
// item order.
func (p *QuotationPage) fetchAccessories(ctx context.Context, items []models.LineItem) ([]models.ProjectAccessory, error) {
	perItem := make([][]models.ProjectAccessory, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(accessoryFetchLimit)
	for i, it := range items {
		g.Go(func() error {
			accs, err := p.accessories.ListAll(gctx, api.ListParams{}.With("line_item", strconv.Itoa(it.ID)))
			if err != nil {
				return fmt.Errorf("load accessories of line item %d: %w", it.ID, err)
			}
			perItem[i] = accs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []models.ProjectAccessory
	for _, accs := range perItem {
		out = append(out, accs...)
	}
	return out, nil
}

func fileSlug(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "/", "-"))
}
