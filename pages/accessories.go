package pages

import (
	"cmp"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

// AccessoriesPage manages the accessories attached to one line item.
type AccessoriesPage struct {
	*CRUDPage[models.ProjectAccessory]

	Store *stores.AccessoryStore
	Form  *forms.AccessoryForm
}

func NewAccessoriesPage(c *api.Client, lineItem int, opts Options) *AccessoriesPage {
	opts = opts.withDefaults()
	p := &AccessoriesPage{
		Store: stores.NewAccessoryStore(c, lineItem, opts.storeOptions()...),
		Form:  forms.NewAccessoryForm(lineItem),
	}

	view := lists.NewView(func(a models.ProjectAccessory) []string {
		return []string{a.ProductName, a.VariantName, a.InstallationNotes}
	}).
		Sorter("product", func(a, b models.ProjectAccessory) int {
			return strings.Compare(a.ProductName, b.ProductName)
		}).
		Sorter("total", func(a, b models.ProjectAccessory) int { return cmp.Compare(a.TotalPrice, b.TotalPrice) })

	p.CRUDPage = NewCRUDPage(Config[models.ProjectAccessory]{
		Noun:    "Accessory",
		Plural:  "accessories",
		Store:   p.Store,
		Form:    p.Form,
		View:    view,
		Load:    p.Store.Load,
		Options: opts,
	})
	return p
}

// SearchProducts loads the product picker. category and brand of 0 mean
// any.
func (p *AccessoriesPage) SearchProducts(ctx context.Context, search string, category, brand int) ([]models.ProductVariant, error) {
	params := api.ListParams{Search: strings.TrimSpace(search)}
	if category > 0 {
		params = params.With("category", strconv.Itoa(category))
	}
	if brand > 0 {
		params = params.With("brand", strconv.Itoa(brand))
	}
	products, err := p.Store.AvailableProducts(ctx, params)
	if err != nil {
		p.notify.Error(errorMessage(err))
	}
	return products, err
}

// SelectVariant picks a product from the last search into the open form.
func (p *AccessoriesPage) SelectVariant(id int) error {
	v, ok := p.Store.Variant(id)
	if !ok {
		return fmt.Errorf("product variant %d: %w", id, ErrNotFound)
	}
	p.Form.SelectVariant(v)
	return nil
}

// Preview prices the open form's current input.
func (p *AccessoriesPage) Preview() services.PricePreview {
	return p.Form.Preview()
}

func (p *AccessoriesPage) Totals() stores.AccessoryTotals {
	return p.Store.Totals()
}

func (p *AccessoriesPage) Brands() []models.Brand {
	return p.Store.Brands()
}

func (p *AccessoriesPage) Categories() []models.ProductCategory {
	return p.Store.Categories()
}
