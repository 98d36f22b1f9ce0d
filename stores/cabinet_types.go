package stores

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Thaquidheen/hoch-frontend-sub002/api"
	"github.com/Thaquidheen/hoch-frontend-sub002/lists"
	"github.com/Thaquidheen/hoch-frontend-sub002/models"
)

// CabinetTypeStore backs the cabinet types screen.
type CabinetTypeStore struct {
	*Store[models.CabinetType]

	client     *api.CabinetTypes
	categories *api.Resource[models.Category]

	refMu   sync.RWMutex
	catList []models.Category
}

func NewCabinetTypeStore(c *api.Client, opts ...Option) *CabinetTypeStore {
	client := api.NewCabinetTypes(c)
	return &CabinetTypeStore{
		Store:      NewStore[models.CabinetType](client, opts...),
		client:     client,
		categories: api.NewCategories(c),
	}
}

// LoadAll fetches the categories and the cabinet types concurrently.
func (s *CabinetTypeStore) LoadAll(ctx context.Context, params api.ListParams) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cats, err := s.categories.ListAll(gctx, api.ListParams{})
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		s.refMu.Lock()
		s.catList = cats
		s.refMu.Unlock()
		return nil
	})
	g.Go(func() error {
		return s.Fetch(gctx, params)
	})
	return g.Wait()
}

// Categories returns the loaded categories.
func (s *CabinetTypeStore) Categories() []models.Category {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	return append([]models.Category(nil), s.catList...)
}

// CategoryName resolves a category id, preferring the loaded categories
// over the denormalised name on the record.
func (s *CabinetTypeStore) CategoryName(id int) string {
	s.refMu.RLock()
	defer s.refMu.RUnlock()
	for _, c := range s.catList {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// CategoryGroup is the cabinet types of one category.
type CategoryGroup struct {
	CategoryID int
	Name       string
	Types      []models.CabinetType
}

// GroupByCategory groups the loaded types by category in order of first
// appearance.
func (s *CabinetTypeStore) GroupByCategory() []CategoryGroup {
	groups := lists.GroupBy(s.Items(), func(c models.CabinetType) int { return c.Category })
	out := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		name := s.CategoryName(g.Key)
		if name == "" {
			name = g.Items[0].CategoryName
		}
		if name == "" {
			name = "Uncategorized"
		}
		out = append(out, CategoryGroup{CategoryID: g.Key, Name: name, Types: g.Items})
	}
	return out
}

// CabinetTypeStats are the counters shown above the table.
type CabinetTypeStats struct {
	Total      int
	Active     int
	Inactive   int
	Categories int
}

func (s *CabinetTypeStore) Stats() CabinetTypeStats {
	items := s.Items()
	active := lists.Counts(items, models.CabinetType.Active)
	categories := lists.Counts(items, func(c models.CabinetType) int { return c.Category })
	return CabinetTypeStats{
		Total:      len(items),
		Active:     active[true],
		Inactive:   active[false],
		Categories: len(categories),
	}
}

// Duplicate copies a cabinet type on the server and prepends the copy.
func (s *CabinetTypeStore) Duplicate(ctx context.Context, id int, name string) (models.CabinetType, error) {
	return s.insert(ctx, func(ctx context.Context) (models.CabinetType, error) {
		return s.client.Duplicate(ctx, id, name)
	})
}
