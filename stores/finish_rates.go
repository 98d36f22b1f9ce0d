package stores

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pocketbase/pocketbase/tools/list"
	"golang.org/x/sync/errgroup"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
	"github.com/Thaquidheen/hoch-frontend-sub002/services"
)

// FinishRateStore backs the finish rates screen.
type FinishRateStore struct {
	*Store[models.FinishRate]

	client    *api.FinishRates
	materials *api.Resource[models.Material]
	today     func() models.Date

	refMu   sync.RWMutex
	matList []models.Material
}

func NewFinishRateStore(c *api.Client, opts ...Option) *FinishRateStore {
	o := buildOptions(opts)
	client := api.NewFinishRates(c)
	return &FinishRateStore{
		Store:     NewStore[models.FinishRate](client, opts...),
		client:    client,
		materials: api.NewMaterials(c),
		today:     o.today,
	}
}

// Today is the reference day used for classification and current rates.
func (s *FinishRateStore) Today() models.Date {
	return s.today()
}

// LoadAll fetches the materials and the rates concurrently.
func (s *FinishRateStore) LoadAll(ctx context.Context, params api.ListParams) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.LoadMaterials(gctx)
	})
	g.Go(func() error {
		return s.Fetch(gctx, params)
	})
	return g.Wait()
}

// LoadMaterials refreshes the material list used by the dropdowns.
func (s *FinishRateStore) LoadMaterials(ctx context.Context) error {
	mats, err := s.materials.ListAll(ctx, api.ListParams{})
	if err != nil {
		return fmt.Errorf("load materials: %w", err)
	}
	s.refMu.Lock()
	s.matList = mats
	s.refMu.Unlock()
	return nil
}

func (s *FinishRateStore) Materials() []models.Material {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return append([]models.Material(nil), s.matList...)
}

// Material looks a loaded material up by id.
func (s *FinishRateStore) Material(id int) (models.Material, bool) {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	for _, m := range s.matList {
		if m.ID == id {
			return m, true
		}
	}
	return models.Material{}, false
}

// FetchCurrent loads only the rates that apply today: active, started, and
// not yet ended.
func (s *FinishRateStore) FetchCurrent(ctx context.Context, params api.ListParams) error {
	today := s.today()
	return s.load(ctx, params, func(ctx context.Context, params api.ListParams) (api.Page[models.FinishRate], error) {
		page, err := s.client.Current(ctx, today, params)
		if err != nil {
			return page, err
		}
		dropped := len(page.Items)
		page.Items = services.CurrentRates(page.Items, today)
		page.Total -= dropped - len(page.Items)
		return page, nil
	})
}

// MaterialGroup is the rates of one material.
type MaterialGroup struct {
	MaterialID int
	Name       string
	Rates      []models.FinishRate
}

// GroupByMaterial groups the loaded rates by material, sorted by name.
func (s *FinishRateStore) GroupByMaterial() []MaterialGroup {
	groups := lists.GroupBy(s.Items(), func(r models.FinishRate) int { return r.Material })
	out := make([]MaterialGroup, 0, len(groups))
	for _, g := range groups {
		name := g.Items[0].MaterialName
		if m, ok := s.Material(g.Key); ok {
			name = m.Name
		}
		if name == "" {
			name = fmt.Sprintf("Material #%d", g.Key)
		}
		out = append(out, MaterialGroup{MaterialID: g.Key, Name: name, Rates: g.Items})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Stats classifies the loaded rates against today.
func (s *FinishRateStore) Stats() services.RateStats {
	return services.CountRates(s.Items(), s.today())
}

// Status classifies one rate against today.
func (s *FinishRateStore) Status(rate models.FinishRate) services.RateStatus {
	return services.ClassifyRate(rate, s.today())
}

// BulkUpdate applies the same fields to several rates. Returned rates are
// swapped in; if the backend only reports a count the list is refetched.
func (s *FinishRateStore) BulkUpdate(ctx context.Context, ids []int, fields map[string]any) (int, error) {
	ids = list.NonzeroUniques(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	s.begin()
	res, err := s.client.BulkUpdate(ctx, ids, fields)
	s.mu.Lock()
	s.finishLocked(err)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	if len(res.Rates) == 0 {
		if err := s.Refresh(ctx); err != nil {
			return res.Updated, err
		}
		return res.Updated, nil
	}
	s.replaceAll(res.Rates)
	if res.Updated == 0 {
		res.Updated = len(res.Rates)
	}
	return res.Updated, nil
}

// ImportReport is the outcome of creating the valid rows of an import file.
type ImportReport struct {
	Created []models.FinishRate
	// Failed holds the parse-time errors plus one entry per row the
	// backend rejected.
	Failed []services.ValidationError
}

// Import creates the valid rows of a parsed import file one by one. A row
// the backend rejects does not stop the rest.
func (s *FinishRateStore) Import(ctx context.Context, parsed *services.RateImportResult) (ImportReport, error) {
	report := ImportReport{Failed: append([]services.ValidationError(nil), parsed.Errors...)}
	for _, row := range parsed.Rates {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		created, err := s.Create(ctx, row.Rate)
		if err != nil {
			report.Failed = append(report.Failed, rowErrors(row.Row, err)...)
			continue
		}
		report.Created = append(report.Created, created)
	}
	s.logger.Info("finish rate import finished",
		"file", parsed.FileName, "created", len(report.Created), "failed", len(report.Failed))
	return report, nil
}

func rowErrors(row int, err error) []services.ValidationError {
	apiErr, ok := api.AsError(err)
	if !ok || len(apiErr.FieldMap()) == 0 {
		return []services.ValidationError{{Row: row, Field: "Row", Message: err.Error()}}
	}
	fields := apiErr.FieldMap()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]services.ValidationError, 0, len(keys))
	for _, k := range keys {
		out = append(out, services.ValidationError{Row: row, Field: k, Message: fields[k]})
	}
	return out
}
