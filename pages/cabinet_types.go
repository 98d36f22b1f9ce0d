package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

// CabinetTypesPage is the cabinet type management screen.
type CabinetTypesPage struct {
	*CRUDPage[models.CabinetType]

	Store *stores.CabinetTypeStore
	Form  *forms.CabinetTypeForm

	params api.ListParams
}

func NewCabinetTypesPage(c *api.Client, opts Options) *CabinetTypesPage {
	opts = opts.withDefaults()
	p := &CabinetTypesPage{
		Store: stores.NewCabinetTypeStore(c, opts.storeOptions()...),
		Form:  forms.NewCabinetTypeForm(),
	}

	view := lists.NewView(func(ct models.CabinetType) []string {
		return []string{ct.Name, ct.Description, p.categoryName(ct)}
	}).
		Field("category", func(ct models.CabinetType) string { return strconv.Itoa(ct.Category) }).
		Field("active", func(ct models.CabinetType) string { return strconv.FormatBool(ct.IsActive) }).
		Sorter("name", func(a, b models.CabinetType) int { return strings.Compare(a.Name, b.Name) }).
		Sorter("category", func(a, b models.CabinetType) int {
			return strings.Compare(p.categoryName(a), p.categoryName(b))
		})
	view.SortBy("name", false)

	p.CRUDPage = NewCRUDPage(Config[models.CabinetType]{
		Noun:    "Cabinet type",
		Plural:  "cabinet types",
		Store:   p.Store,
		Form:    p.Form,
		View:    view,
		Load:    p.load,
		Options: opts,
	})
	return p
}

func (p *CabinetTypesPage) load(ctx context.Context) error {
	if err := p.Store.LoadAll(ctx, p.params); err != nil {
		return err
	}
	cats := p.Store.Categories()
	ids := make([]int, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	p.Form.SetCategories(ids)
	return nil
}

func (p *CabinetTypesPage) categoryName(ct models.CabinetType) string {
	if name := p.Store.CategoryName(ct.Category); name != "" {
		return name
	}
	return ct.CategoryName
}

// FilterServer narrows the next load to one category and a search term on
// the backend. Zero and "" clear them.
func (p *CabinetTypesPage) FilterServer(category int, search string) {
	params := api.ListParams{Search: strings.TrimSpace(search)}
	if category > 0 {
		params = params.With("category", strconv.Itoa(category))
	}
	p.params = params
}

// FilterCategory narrows the visible list to one category; 0 shows all.
func (p *CabinetTypesPage) FilterCategory(id int) {
	if id <= 0 {
		p.View().SetFilter("category", "")
		return
	}
	p.View().SetFilter("category", strconv.Itoa(id))
}

// Groups is the visible list grouped by category.
func (p *CabinetTypesPage) Groups() []stores.CategoryGroup {
	visible := p.Visible().Items
	groups := lists.GroupBy(visible, func(ct models.CabinetType) int { return ct.Category })
	out := make([]stores.CategoryGroup, len(groups))
	for i, g := range groups {
		name := p.categoryName(g.Items[0])
		if name == "" {
			name = "Uncategorized"
		}
		out[i] = stores.CategoryGroup{CategoryID: g.Key, Name: name, Types: g.Items}
	}
	return out
}

func (p *CabinetTypesPage) Stats() stores.CabinetTypeStats {
	return p.Store.Stats()
}

// Duplicate copies cabinet type id. An empty name lets the backend pick one.
func (p *CabinetTypesPage) Duplicate(ctx context.Context, id int, name string) (models.CabinetType, error) {
	dup, err := p.Store.Duplicate(ctx, id, strings.TrimSpace(name))
	if err != nil {
		p.notify.Error(errorMessage(err))
		return dup, err
	}
	p.notify.Success(fmt.Sprintf("Cabinet type duplicated as %q", dup.Name))
	return dup, nil
}
