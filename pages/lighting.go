package pages

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
	"github.com/Thaquidheen/hoch-frontend-sub002/stores"
)

// LightingPage is the read-only lighting summary of a project.
type LightingPage struct {
	Store *stores.LightingStore

	view    *lists.View[models.LightingItem]
	logger  *slog.Logger
	notify  *Notifications
	loadErr error
	unwatch func()
}

func NewLightingPage(c *api.Client, project int, opts Options) *LightingPage {
	opts = opts.withDefaults()
	view := lists.NewView[models.LightingItem](nil).
		Field("cabinet_material", func(it models.LightingItem) string { return strconv.Itoa(it.CabinetMaterial) }).
		Field("active", func(it models.LightingItem) string { return strconv.FormatBool(it.IsActive) }).
		Sorter("total", func(a, b models.LightingItem) int { return cmp.Compare(a.TotalCost, b.TotalCost) })
	view.SetPageSize(opts.PageSize)

	return &LightingPage{
		Store:  stores.NewLightingStore(c, project, opts.storeOptions()...),
		view:   view,
		logger: opts.Logger,
		notify: opts.Notify,
	}
}

func (p *LightingPage) Notifications() *Notifications { return p.notify }

func (p *LightingPage) View() *lists.View[models.LightingItem] { return p.view }

func (p *LightingPage) Load(ctx context.Context) error {
	err := p.Store.Load(ctx)
	p.loadErr = err
	if err != nil && !errors.Is(err, context.Canceled) {
		p.notify.Error(fmt.Sprintf("Failed to load lighting: %s", errorMessage(err)))
	}
	return err
}

func (p *LightingPage) LoadErr() error { return p.loadErr }

// Retry repeats the last load if it failed.
func (p *LightingPage) Retry(ctx context.Context) error {
	if p.loadErr == nil {
		return nil
	}
	return p.Load(ctx)
}

// Refresh reloads only when the line items changed since the last load.
func (p *LightingPage) Refresh(ctx context.Context) error {
	if p.Store.Loaded() && !p.Store.Stale() {
		return nil
	}
	return p.Load(ctx)
}

// Watch marks the summary stale whenever items changes. Close undoes it.
func (p *LightingPage) Watch(items *stores.LineItemStore) {
	p.Close()
	p.unwatch = p.Store.Watch(items)
}

// Close detaches the page from the line item store it watches.
func (p *LightingPage) Close() {
	if p.unwatch != nil {
		p.unwatch()
		p.unwatch = nil
	}
}

func (p *LightingPage) Visible() lists.Result[models.LightingItem] {
	return p.view.Apply(p.Store.Items())
}

func (p *LightingPage) Summary() services.LightingSummary {
	return p.Store.Summary()
}

func (p *LightingPage) Project() models.Project {
	return p.Store.Project()
}

// Rule returns the rule pricing a material and cabinet type. An ambiguous
// match is logged and surfaced as a warning.
func (p *LightingPage) Rule(material, cabinetType int) services.RuleMatch {
	m := p.Store.ApplicableRule(material, cabinetType)
	if m.Ambiguous {
		p.logger.Warn("ambiguous lighting rule match",
			"material", material, "cabinet_type", cabinetType, "rule", m.Rule.ID, "candidates", m.Candidates)
		p.notify.Warning(fmt.Sprintf("%d lighting rules match; using %s", m.Candidates, ruleLabel(m.Rule)))
	}
	return m
}

func ruleLabel(r models.LightingRule) string {
	if r.Name != "" {
		return fmt.Sprintf("%q", r.Name)
	}
	return fmt.Sprintf("rule #%d", r.ID)
}
