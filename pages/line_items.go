package pages

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/forms"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

// ErrInvalidDimensions is returned for non-positive sizes or a qty below 1.
var ErrInvalidDimensions = errors.New("dimensions must be positive and qty at least 1")

// LineItemsPage lists the cabinets of one project. Submitting the form
// saves the item and then has the backend price it.
type LineItemsPage struct {
	*CRUDPage[models.LineItem]

	Store *stores.LineItemStore
	Form  *forms.LineItemForm

	materials    *api.Resource[models.Material]
	cabinetTypes *api.CabinetTypes

	refMu    sync.RWMutex
	matList  []models.Material
	typeList []models.CabinetType
}

func NewLineItemsPage(c *api.Client, project int, opts Options) *LineItemsPage {
	opts = opts.withDefaults()
	p := &LineItemsPage{
		Store:        stores.NewLineItemStore(c, project, opts.storeOptions()...),
		Form:         forms.NewLineItemForm(project, nil),
		materials:    api.NewMaterials(c),
		cabinetTypes: api.NewCabinetTypes(c),
	}

	view := lists.NewView(func(it models.LineItem) []string {
		return []string{it.CabinetTypeName, it.CabinetMaterialName, it.DoorMaterialName, it.Remarks}
	}).
		Field("scope", func(it models.LineItem) string { return string(it.Scope) }).
		Field("cabinet_type", func(it models.LineItem) string { return strconv.Itoa(it.CabinetType) }).
		Field("cabinet_material", func(it models.LineItem) string { return strconv.Itoa(it.CabinetMaterial) }).
		Sorter("cabinet_type", func(a, b models.LineItem) int {
			return strings.Compare(a.CabinetTypeName, b.CabinetTypeName)
		}).
		Sorter("total", func(a, b models.LineItem) int {
			return cmp.Compare(a.LineTotalBeforeTax, b.LineTotalBeforeTax)
		})

	p.CRUDPage = NewCRUDPage(Config[models.LineItem]{
		Noun:    "Line item",
		Plural:  "line items",
		Store:   p.Store,
		Form:    p.Form,
		View:    view,
		Load:    p.load,
		Save:    p.save,
		Options: opts,
	})
	return p
}

// load fetches the items with the material and cabinet type dropdowns.
func (p *LineItemsPage) load(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.Store.Load(gctx)
	})
	g.Go(func() error {
		mats, err := p.materials.ListAll(gctx, api.ListParams{}.With("is_active", "true"))
		if err != nil {
			return fmt.Errorf("load materials: %w", err)
		}
		p.refMu.Lock()
		p.matList = mats
		p.refMu.Unlock()
		return nil
	})
	g.Go(func() error {
		types, err := p.cabinetTypes.ListAll(gctx, api.ListParams{}.With("is_active", "true"))
		if err != nil {
			return fmt.Errorf("load cabinet types: %w", err)
		}
		p.refMu.Lock()
		p.typeList = types
		p.refMu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	p.Form.SetMaterials(p.Materials())
	return nil
}

// save is create-or-update followed by compute. A pricing failure after a
// successful save is only a warning: the item exists and can be recomputed.
func (p *LineItemsPage) save(ctx context.Context, st FormState, item models.LineItem) (models.LineItem, error) {
	if st.Status() == FormEditing {
		item.ID = st.ID()
	}
	saved, err := p.Store.Save(ctx, item)
	if err != nil && saved.ID != 0 {
		p.logger.Warn("line item saved without pricing", "id", saved.ID, "error", err)
		p.notify.Warning(fmt.Sprintf("Line item saved but could not be priced: %s", errorMessage(err)))
		return saved, nil
	}
	return saved, err
}

func (p *LineItemsPage) Materials() []models.Material {
	p.refMu.RLock()
	defer p.refMu.RUnlock()
	return append([]models.Material(nil), p.matList...)
}

func (p *LineItemsPage) CabinetTypes() []models.CabinetType {
	p.refMu.RLock()
	defer p.refMu.RUnlock()
	return append([]models.CabinetType(nil), p.typeList...)
}

// CabinetTypeOptions are the cabinet type dropdown entries.
func (p *LineItemsPage) CabinetTypeOptions() []services.Option {
	types := p.CabinetTypes()
	out := make([]services.Option, len(types))
	for i, t := range types {
		out[i] = services.Option{Value: strconv.Itoa(t.ID), Label: t.Name}
	}
	return out
}

// Compute reprices one item.
func (p *LineItemsPage) Compute(ctx context.Context, id int) (models.LineItem, error) {
	it, err := p.Store.Compute(ctx, id)
	if err != nil {
		p.notify.Error(errorMessage(err))
		return it, err
	}
	p.notify.Success(fmt.Sprintf("Line item priced at %s", services.FormatINR(it.LineTotalBeforeTax)))
	return it, nil
}

// ComputeSelected reprices the checked items.
func (p *LineItemsPage) ComputeSelected(ctx context.Context) (int, error) {
	var n int
	err := p.BulkAction(func(ids []int) error {
		items, err := p.Store.BatchCompute(ctx, ids)
		n = len(items)
		return err
	})
	if err != nil {
		return n, err
	}
	p.notify.Success(fmt.Sprintf("Priced %s", services.FormatCount(n, "line item")))
	return n, nil
}

// ComputeAll reprices every item of the project.
func (p *LineItemsPage) ComputeAll(ctx context.Context) (int, error) {
	items, err := p.Store.BatchCompute(ctx, nil)
	if err != nil {
		p.notify.Error(errorMessage(err))
		return 0, err
	}
	p.notify.Success(fmt.Sprintf("Priced %s", services.FormatCount(len(items), "line item")))
	return len(items), nil
}

// UpdateDimensions resizes one item; the backend reprices it.
func (p *LineItemsPage) UpdateDimensions(ctx context.Context, id int, dims models.Dimensions) (models.LineItem, error) {
	if dims.WidthMM <= 0 || dims.DepthMM <= 0 || dims.HeightMM <= 0 || dims.Qty < 1 {
		p.notify.Warning(msgFixErrors)
		return models.LineItem{}, ErrInvalidDimensions
	}
	it, err := p.Store.UpdateDimensions(ctx, id, dims)
	if err != nil {
		p.notify.Error(errorMessage(err))
		return it, err
	}
	p.notify.Success(fmt.Sprintf("Line item resized, now %s", services.FormatINR(it.LineTotalBeforeTax)))
	return it, nil
}

// UpdateMaterials swaps the materials of one item; the backend reprices it.
func (p *LineItemsPage) UpdateMaterials(ctx context.Context, id int, choice models.MaterialChoice) (models.LineItem, error) {
	it, err := p.Store.UpdateMaterials(ctx, id, choice)
	if err != nil {
		p.notify.Error(errorMessage(err))
		return it, err
	}
	p.notify.Success(fmt.Sprintf("Line item materials changed, now %s", services.FormatINR(it.LineTotalBeforeTax)))
	return it, nil
}

func (p *LineItemsPage) Totals() stores.LineItemTotals {
	return p.Store.Totals()
}
