package stores

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// AccessoryStore holds the accessories of one line item and the catalog
// used to pick new ones.
type AccessoryStore struct {
	*Store[models.ProjectAccessory]

	client     *api.Accessories
	brands     *api.Resource[models.Brand]
	categories *api.Resource[models.ProductCategory]
	lineItem   int

	refMu     sync.RWMutex
	brandList []models.Brand
	catList   []models.ProductCategory
	products  []models.ProductVariant
}

func NewAccessoryStore(c *api.Client, lineItem int, opts ...Option) *AccessoryStore {
	client := api.NewAccessories(c)
	return &AccessoryStore{
		Store:      NewStore[models.ProjectAccessory](client, opts...),
		client:     client,
		brands:     api.NewBrands(c),
		categories: api.NewProductCategories(c),
		lineItem:   lineItem,
	}
}

// LineItem is the line item the store is scoped to.
func (s *AccessoryStore) LineItem() int { return s.lineItem }

// Load fetches the line item's accessories together with the brand and
// category filters of the product picker.
func (s *AccessoryStore) Load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Fetch(gctx, api.ListParams{}.With("line_item", strconv.Itoa(s.lineItem)))
	})
	g.Go(func() error {
		brands, err := s.brands.ListAll(gctx, api.ListParams{})
		if err != nil {
			return fmt.Errorf("load brands: %w", err)
		}
		s.refMu.Lock()
		s.brandList = brands
		s.refMu.Unlock()
		return nil
	})
	g.Go(func() error {
		cats, err := s.categories.ListAll(gctx, api.ListParams{})
		if err != nil {
			return fmt.Errorf("load product categories: %w", err)
		}
		s.refMu.Lock()
		s.catList = cats
		s.refMu.Unlock()
		return nil
	})
	return g.Wait()
}

func (s *AccessoryStore) Brands() []models.Brand {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return append([]models.Brand(nil), s.brandList...)
}

func (s *AccessoryStore) Categories() []models.ProductCategory {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return append([]models.ProductCategory(nil), s.catList...)
}

// AvailableProducts searches the catalog and remembers the result for
// Variant lookups. Supported filters: category, brand.
func (s *AccessoryStore) AvailableProducts(ctx context.Context, params api.ListParams) ([]models.ProductVariant, error) {
	page, err := s.client.AvailableProducts(ctx, params)
	if err != nil {
		return nil, err
	}
	s.refMu.Lock()
	s.products = page.Items
	s.refMu.Unlock()
	return page.Items, nil
}

// Variant looks up a product from the last AvailableProducts result.
func (s *AccessoryStore) Variant(id int) (models.ProductVariant, bool) {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	for _, v := range s.products {
		if v.ID == id {
			return v, true
		}
	}
	return models.ProductVariant{}, false
}

// Create attaches an accessory to the store's line item.
func (s *AccessoryStore) Create(ctx context.Context, acc models.ProjectAccessory) (models.ProjectAccessory, error) {
	if acc.LineItem == 0 {
		acc.LineItem = s.lineItem
	}
	return s.Store.Create(ctx, acc)
}

// AccessoryTotals sums the accessories of the line item.
type AccessoryTotals struct {
	Count     int
	Qty       int
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Totals uses the backend's total_price where present and qty * unit price
// otherwise.
func (s *AccessoryStore) Totals() AccessoryTotals {
	var t AccessoryTotals
	sum := decimal.Zero
	for _, acc := range s.Items() {
		line := acc.TotalPrice
		if line == 0 {
			line = services.AccessoryLineTotal(acc.UnitPrice, acc.Qty)
		}
		sum = sum.Add(decimal.NewFromFloat(line))
		t.Count++
		t.Qty += acc.Qty
	}
	tax := sum.Mul(decimal.New(services.GSTPercent, -2)).Round(2)
	t.Subtotal = sum.Round(2).InexactFloat64()
	t.TaxAmount = tax.InexactFloat64()
	t.Total = sum.Add(tax).Round(2).InexactFloat64()
	return t
}
